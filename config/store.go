/*
Copyright © 2026 the HFire authors.
This file is part of HFire.

HFire is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

HFire is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with HFire.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package config implements the configuration façade: a flat,
// "#"-commented key=value property file format, the keyed fuel-model
// collection it names, the environment provider it wires together, and the
// process-wide PRNG seeding policy it selects.
package config

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spatialmodel/hfire/herr"
	"github.com/spatialmodel/hfire/table"
)

// NullValue is the sentinel Get returns for a recognized key that is absent
// from the loaded file.
const NullValue = "NULL"

// PropertyStore is a read-only, once-built mapping from configuration key
// to string value. It is never mutated after Load returns.
type PropertyStore struct {
	values map[string]string
}

// Load reads a "#"-commented, space/=/,/tab-separated key=value file.
func Load(path string) (*PropertyStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, herr.Wrap(herr.Io, path, "unable to open configuration file", err)
	}
	defer f.Close()
	return Read(f, path)
}

// Read parses a property file from r. context names the source for error
// messages.
func Read(r io.Reader, context string) (*PropertyStore, error) {
	values := map[string]string{}
	err := table.ReadLines(r, func(fields []string) error {
		if len(fields) < 2 {
			return herr.New(herr.Parse, context, "expected KEY <sep> VALUE, got a single token")
		}
		key := strings.ToUpper(fields[0])
		values[key] = strings.Join(fields[1:], " ")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &PropertyStore{values: values}, nil
}

// Get returns the value bound to key, or NullValue if key was never present
// in the loaded file. The lookup is case-insensitive on the key.
func Get(store *PropertyStore, key string) string {
	if v, ok := store.values[strings.ToUpper(key)]; ok {
		return v
	}
	return NullValue
}

// GetFloat parses Get(store, key) as a float64, returning ok=false for the
// NULL sentinel or a malformed value.
func GetFloat(store *PropertyStore, key string) (v float64, ok bool) {
	s := Get(store, key)
	if s == NullValue {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// GetInt parses Get(store, key) as an int, returning ok=false for the NULL
// sentinel or a malformed value.
func GetInt(store *PropertyStore, key string) (v int, ok bool) {
	s := Get(store, key)
	if s == NullValue {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
