// Copyright 2026 by Harald Albrecht
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy
// of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations
// under the License.

package interpolate

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("lexing and parsing", func() {

	Context("identifiers", func() {

		It("parses an identifier", func() {
			Expect(parseName("_abc123DEF")).To(Equal("_abc123DEF"))
			Expect(parseName("_abc123def-foo")).To(Equal("_abc123def"))
			Expect(parseName("abc_123_def")).To(Equal("abc_123_def"))
		})

		It("rejects non-identifiers", func() {
			Expect(parseName("123")).To(BeZero())
			Expect(parseName("$")).To(BeZero())
		})

	})

	When("parsing into segments", func() {

		It("returns an empty string unmodified", func() {
			segments, err := Parse("", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(segments).To(BeEmpty())
		})

		It("returns a plain string unmodified", func() {
			segments, err := Parse("foo {-} bar", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(segments).To(HaveExactElements(PlainText("foo {-} bar")))
		})

		DescribeTable("dollars that don't substitute",
			func(s string) {
				segments, err := Parse(s, nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(segments).To(HaveExactElements(PlainText(s)))
			},
			Entry("trailing", "foo$"),
			Entry("followed by digit", "$1.00"),
			Entry("followed by blank", "a $ b"),
		)

		It("doesn't treat double dollars specially", func() {
			segments, err := Parse("foo$$bar", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(segments).To(HaveExactElements(
				PlainText("foo$"),
				Substitution{VariableName: "bar"},
			))
		})

		It("parses an unbraced substitution", func() {
			segments, err := Parse("foo$bar.baz", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(segments).To(HaveExactElements(
				PlainText("foo"),
				Substitution{VariableName: "bar"},
				PlainText(".baz"),
			))
		})

		It("parses an unbraced substitution at end", func() {
			segments, err := Parse("foo$bar", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(segments).To(HaveExactElements(
				PlainText("foo"),
				Substitution{VariableName: "bar"},
			))
		})

		It("parses a braced substitution", func() {
			segments, err := Parse("foo${bar}baz", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(segments).To(HaveExactElements(
				PlainText("foo"),
				Substitution{VariableName: "bar"},
				PlainText("baz"),
			))
		})

		It("parses a braced substitution at end", func() {
			segments, err := Parse("foo${bar}", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(segments).To(HaveExactElements(
				PlainText("foo"),
				Substitution{VariableName: "bar"},
			))
		})

		DescribeTable("substitution operations",
			func(oper string) {
				segments, err := Parse("foo${bar"+oper+"xxx}baz", nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(segments).To(HaveExactElements(
					PlainText("foo"),
					Substitution{
						VariableName: "bar",
						Operation:    oper,
						AltValue: []Segment{
							PlainText("xxx"),
						},
					},
					PlainText("baz"),
				))
			},
			Entry(nil, "?"),
			Entry(nil, "+"),
			Entry(nil, "-"),
			Entry(nil, ":?"),
			Entry(nil, ":+"),
			Entry(nil, ":-"),
		)

		DescribeTable("malformed substitutions",
			func(s string, errmsg string) {
				segments, err := Parse(s, nil)
				Expect(err).To(MatchError(errmsg))
				Expect(segments).To(BeNil())
			},
			Entry("missing name", "foo${", "missing variable name after ${"),
			Entry("name not starting with letter", "foo${1}", "missing variable name after ${"),
			Entry("unterminated name", "foo${bar", "unterminated ${"),
			Entry("unknown operation", "foo${bar*abc}", "invalid variable substitution operation"),
			Entry("unclosed operation", "foo${bar?", "unclosed braced variable substitution"),
			Entry("incomplete colon operation", "foo${bar:", "incomplete variable substitution operation"),
			Entry("unknown colon operation", "foo${bar:*", "invalid variable substitution operation"),
			Entry("unclosed nested", "${a:-${b:-c}", "unclosed braced variable substitution"),
		)

	})

	When("resolving escapes", func() {

		escapes := Escapes{
			'n':  "\n",
			'\\': "\\",
			'$':  "$",
		}

		It("takes backslashes literally without escapes", func() {
			segments, err := Parse(`a\nb\$c`, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(segments).To(HaveExactElements(
				PlainText(`a\nb\`),
				Substitution{VariableName: "c"},
			))
		})

		It("replaces known escapes", func() {
			segments, err := Parse(`a\nb\\c\$d`, escapes)
			Expect(err).NotTo(HaveOccurred())
			Expect(segments).To(HaveExactElements(PlainText("a\nb\\c$d")))
		})

		It("keeps unknown escapes", func() {
			segments, err := Parse(`a\tb\`, escapes)
			Expect(err).NotTo(HaveOccurred())
			Expect(segments).To(HaveExactElements(PlainText(`a\tb\`)))
		})

		It("substitutes after an escaped backslash", func() {
			segments, err := Parse(`\\$FOO`, escapes)
			Expect(err).NotTo(HaveOccurred())
			Expect(segments).To(HaveExactElements(
				PlainText(`\`),
				Substitution{VariableName: "FOO"},
			))
		})

		It("resolves escapes inside alternative values", func() {
			segments, err := Parse(`${FOO:-\${BAR\}}`, escapes)
			Expect(err).NotTo(HaveOccurred())
			Expect(segments).To(HaveExactElements(
				Substitution{
					VariableName: "FOO",
					Operation:    ":-",
					AltValue:     Segments{PlainText("${BAR\\")},
				},
				PlainText("}"),
			))
		})

	})

	Context("segments", func() {

		Context("plain text", func() {

			It("renders text unmodified", func() {
				Expect(PlainText("foo$bar").Text(nil)).To(Equal("foo$bar"))
			})

		})

		Context("substitutions", func() {

			vars := Map(map[string]string{
				"FOO": "bar",
				"BAR": "",
			})

			It("substitutes unbraced variables", func() {
				seg := Substitution{
					VariableName: "FOO",
				}
				Expect(seg.Text(vars)).To(Equal("bar"))
				Expect(seg.Text(nil)).To(Equal(""))
			})

			When("braced", func() {

				It("?", func() {
					seg := Substitution{
						Operation:    "?",
						VariableName: "FOO",
						AltValue:     Segments{PlainText("oh no!")},
					}
					Expect(seg.Text(vars)).To(Equal("bar"))
					Expect(seg.Text(nil)).Error().To(MatchError("oh no!"))
				})

				It("? without message", func() {
					seg := Substitution{
						Operation:    "?",
						VariableName: "FOO",
						AltValue:     Segments{},
					}
					Expect(seg.Text(nil)).Error().To(MatchError("FOO: required variable is not set"))
				})

				It(":?", func() {
					seg := Substitution{
						Operation:    ":?",
						VariableName: "FOO",
						AltValue:     Segments{PlainText("oh no!")},
					}
					Expect(seg.Text(vars)).To(Equal("bar"))
					Expect(seg.Text(nil)).Error().To(MatchError("oh no!"))

					segs := Segments{
						Substitution{
							Operation:    ":?",
							VariableName: "BAR",
							AltValue:     Segments{PlainText("oh no!")},
						},
					}
					Expect(segs.Text(vars)).Error().To(MatchError("oh no!"))
				})

				It("-", func() {
					seg := Substitution{
						Operation:    "-",
						VariableName: "FOO",
						AltValue:     Segments{PlainText("oh no!")},
					}
					Expect(seg.Text(vars)).To(Equal("bar"))
					Expect(seg.Text(nil)).To(Equal("oh no!"))

					seg.VariableName = "BAR"
					Expect(seg.Text(vars)).To(BeEmpty())
				})

				It(":-", func() {
					seg := Substitution{
						Operation:    ":-",
						VariableName: "FOO",
						AltValue:     Segments{PlainText("oh no!")},
					}
					Expect(seg.Text(vars)).To(Equal("bar"))
					Expect(seg.Text(nil)).To(Equal("oh no!"))

					seg = Substitution{
						Operation:    ":-",
						VariableName: "BAR",
						AltValue:     Segments{PlainText("oh no!")},
					}
					Expect(seg.Text(vars)).To(Equal("oh no!"))
				})

				It("+", func() {
					seg := Substitution{
						Operation:    "+",
						VariableName: "FOO",
						AltValue:     Segments{PlainText("oh no!")},
					}
					Expect(seg.Text(vars)).To(Equal("oh no!"))
					Expect(seg.Text(nil)).To(Equal(""))
				})

				It(":+", func() {
					seg := Substitution{
						Operation:    ":+",
						VariableName: "FOO",
						AltValue:     Segments{PlainText("oh no!")},
					}
					Expect(seg.Text(vars)).To(Equal("oh no!"))
					Expect(seg.Text(nil)).To(Equal(""))

					seg = Substitution{
						Operation:    ":+",
						VariableName: "BAR",
						AltValue:     Segments{PlainText("oh no!")},
					}
					Expect(seg.Text(vars)).To(Equal(""))
				})

			})

			DescribeTable("bad substitutions",
				func(oper string, missingisgood bool) {
					seg := Substitution{
						VariableName: "ZOO",
						Operation:    oper,
						AltValue: Segments{
							Substitution{
								Operation: "???",
							},
						},
					}
					if missingisgood {
						seg.VariableName = "FOO"
					}
					Expect(seg.Text(vars)).Error().To(HaveOccurred())
				},
				Entry(nil, "?", false),
				Entry(nil, "+", true),
				Entry(nil, "-", false),
				Entry(nil, ":?", false),
				Entry(nil, ":+", true),
				Entry(nil, ":-", false),
			)

		})

	})

	When("E2E", func() {

		vars := Map(map[string]string{
			"FOO": "foo",
			"BAR": "bar",
		})

		It("interpolates", func() {
			segs, err := Parse("This ${FOO} is ${BAR}", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(segs.Text(vars)).To(Equal("This foo is bar"))
		})

		It("interpolates recursively", func() {
			segs, err := Parse("What a ${FOO+${BAR}}", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(segs.Text(vars)).To(Equal("What a bar"))
		})

		It("interpolates nested defaults", func() {
			segs, err := Parse("${NADA:-${ZILCH:-$FOO}}", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(segs.Text(vars)).To(Equal("foo"))
		})

	})

})
