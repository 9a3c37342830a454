/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package document

import (
	"crypto/rand"
	"io"
	"strconv"

	"github.com/google/uuid"
)

// Generator produces element identifiers. Identifiers must be practically unique
// within a session; the store still re-draws on the unlikely event of a clash.
type Generator func() string

const nanoAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// MinNanoIDLength is the shortest NanoID token handed out. Shorter tokens run
// out of free ids within a single page.
const MinNanoIDLength = 8

// nanoUnbiased is the largest multiple of the alphabet size within a byte;
// bytes at or above it are redrawn so that every symbol is equally likely.
const nanoUnbiased = 256 - 256%len(nanoAlphabet)

// NanoID returns a Generator producing lowercase base-36 tokens of the given
// length. Zero or negative selects 16; lengths below MinNanoIDLength are raised to it.
func NanoID(length int) Generator {
	if length <= 0 {
		length = 16
	}
	length = max(length, MinNanoIDLength)
	return func() string {
		id, err := nanoid(rand.Reader, length)
		if err != nil {
			panic("document: crypto/rand failed: " + err.Error())
		}
		return id
	}
}

func nanoid(r io.Reader, length int) (string, error) {
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/4+1)
	for len(out) < length {
		n, err := r.Read(buf)
		if err != nil {
			return "", err
		}
		for _, b := range buf[:n] {
			if int(b) >= nanoUnbiased {
				continue
			}
			out = append(out, nanoAlphabet[int(b)%len(nanoAlphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

// UUIDv7 returns a Generator producing time-sortable RFC 9562 identifiers.
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// Sequence returns a deterministic Generator ("<prefix>1", "<prefix>2", ...). Useful in tests.
func Sequence(prefix string) Generator {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}
