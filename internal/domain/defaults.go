/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package domain

// Defaults is the creation-time record for a kind. It is applied once when an
// element is created and never re-applied afterwards.
type Defaults struct {
	Content string
	Style   Style
	Size    Size
}

var kindDefaults = map[Kind]Defaults{
	KindHeading: {
		Content: "Heading",
		Style: Style{
			StyleFontSize:   "32px",
			StyleFontWeight: "bold",
			StyleColor:      "#1f2937",
		},
		Size: Size{Width: 300, Height: 50},
	},
	KindParagraph: {
		Content: "Paragraph text",
		Style: Style{
			StyleFontSize: "16px",
			StyleColor:    "#374151",
		},
		Size: Size{Width: 300, Height: 80},
	},
	KindButton: {
		Content: "Click me",
		Style: Style{
			StyleBackgroundColor: "#3b82f6",
			StyleColor:           "#ffffff",
			StylePadding:         "10px 20px",
			StyleBorderRadius:    "6px",
			StyleBorder:          "none",
			StyleFontSize:        "16px",
		},
		Size: Size{Width: 120, Height: 44},
	},
	KindImage: {
		Content: "https://placehold.co/300x200",
		Style: Style{
			StyleBorderRadius: "4px",
		},
		Size: Size{Width: 300, Height: 200},
	},
	KindContainer: {
		Style: Style{
			StyleBackgroundColor: "#f3f4f6",
			StylePadding:         "20px",
			StyleBorderRadius:    "8px",
			StyleBorder:          "1px dashed #9ca3af",
		},
		Size: Size{Width: 400, Height: 300},
	},
	KindDivider: {
		Style: Style{
			StyleBorder: "1px solid #d1d5db",
			StyleMargin: "0",
		},
		Size: Size{Width: 400, Height: 2},
	},
}

// DefaultsFor returns a fresh copy of the creation defaults for k.
// Unknown kinds yield a zero record.
func DefaultsFor(k Kind) Defaults {
	d, ok := kindDefaults[k]
	if !ok {
		return Defaults{Style: Style{}}
	}
	d.Style = d.Style.Clone()
	return d
}

// DefaultStyle returns the canonical style record for k.
func DefaultStyle(k Kind) Style { return DefaultsFor(k).Style }

func DefaultContent(k Kind) string { return DefaultsFor(k).Content }

func DefaultSize(k Kind) Size { return DefaultsFor(k).Size }
