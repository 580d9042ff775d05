/*
   tibasic - TI-Basic program compiler & decompiler
   Copyright (c) 2021, Alexander Vollschwitz

   This file is part of tibasic.

   tibasic is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   tibasic is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with tibasic. If not, see <http://www.gnu.org/licenses/>.
*/

package tokens

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

//
type fileEntry struct {
	Code     string `mapstructure:"code"`
	Text     string `mapstructure:"text"`
	Category string `mapstructure:"category"`
}

//
type tableFile struct {
	Tokens []fileEntry `mapstructure:"tokens"`
}

/*
	LoadEntries reads additional table entries from a YAML, JSON, or TOML file.
	The format is determined by the file extension. Example:

		tokens:
		  - code: "BB0A"
		    text: "randInt("
		    category: keyword

	Category defaults to keyword when omitted.
*/
func LoadEntries(path string) ([]Entry, error) {

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("cannot read token table %s: %w", path, err)
	}

	var tf tableFile
	if err := v.Unmarshal(&tf); err != nil {
		return nil, fmt.Errorf("cannot parse token table %s: %w", path, err)
	}

	ret := make([]Entry, 0, len(tf.Tokens))

	for ix, fe := range tf.Tokens {
		code, err := ParseCode(fe.Code)
		if err != nil {
			return nil, fmt.Errorf("token table %s, entry %d: %w", path, ix, err)
		}
		cat := Keyword
		if fe.Category != "" {
			if cat, err = ParseCategory(fe.Category); err != nil {
				return nil, fmt.Errorf(
					"token table %s, entry %d: %w", path, ix, err)
			}
		}
		if fe.Text == "" {
			return nil, fmt.Errorf(
				"token table %s, entry %d: missing text", path, ix)
		}
		ret = append(ret, Entry{Code: code, Text: fe.Text, Category: cat})
	}

	log.WithFields(log.Fields{
		"file":    path,
		"entries": len(ret),
	}).Debug("loaded token table")

	return ret, nil
}

// WithFile returns the built-in entries, extended by those from the given
// file. An empty path yields just the built-in entries.
func WithFile(path string) ([]Entry, error) {
	ret := Default()
	if path == "" {
		return ret, nil
	}
	extra, err := LoadEntries(path)
	if err != nil {
		return nil, err
	}
	return append(ret, extra...), nil
}
