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

package basic

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/tibasic/pkg/tokens"
	"github.com/xelalexv/tibasic/pkg/translate"
)

/*
	DecodePasses decodes body one token category at a time, in the order given
	by tokens.Categories. This only covers single byte tokens and escaped
	lowercase letters, so two byte keywords are not recognized. Lowercase must
	be translated before symbols, since symbol codes overlap with the codes of
	lowercase letters.
*/
func DecodePasses(body []byte, entries []tokens.Entry) ([]string, []UnknownByte) {

	atoms := translate.Atoms(body)

	for _, cat := range tokens.Categories() {
		m := tokens.SingleByte(entries, cat)
		if cat == tokens.Lowercase {
			atoms = translate.TranslateEscaped(m, atoms, tokens.Escape)
		} else {
			atoms = translate.Translate(m, atoms)
		}
	}

	text, offsets := translate.Join(atoms)

	var unknown []UnknownByte
	for _, o := range offsets {
		u := UnknownByte{Offset: o, Value: body[o]}
		log.Warnf("could not decode %v", u)
		unknown = append(unknown, u)
	}

	if len(body) == 0 {
		return nil, unknown
	}
	return strings.Split(text, LineSeparator), unknown
}
