package duetcmder_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	duetcmder "github.com/papercomputeco/duet/cmd/duet"
)

var _ = Describe("NormalizeArgs", func() {
	DescribeTable("rewrites two-letter shorthands",
		func(in, want []string) {
			Expect(duetcmder.NormalizeArgs(duetcmder.NewDuetCmd(), in)).To(Equal(want))
		},
		Entry("separate values",
			[]string{"-m1", "gpt-4o", "-m2", "claude"},
			[]string{"--model1", "gpt-4o", "--model2", "claude"}),
		Entry("equals form",
			[]string{"-m1=gpt-4o", "-m2=claude"},
			[]string{"--model1=gpt-4o", "--model2=claude"}),
		Entry("mixed with other flags",
			[]string{"-r", "3", "-m1", "a", "--topic", "hi"},
			[]string{"-r", "3", "--model1", "a", "--topic", "hi"}),
		Entry("after a bool flag",
			[]string{"--markdown", "-m1", "a", "--debug", "-m2", "b"},
			[]string{"--markdown", "--model1", "a", "--debug", "--model2", "b"}),
		Entry("long forms untouched",
			[]string{"--model1", "a", "--model2=b"},
			[]string{"--model1", "a", "--model2=b"}),
		Entry("values that look like shorthands",
			[]string{"--topic=-m1"},
			[]string{"--topic=-m1"}),
		Entry("arguments after --",
			[]string{"-m1", "a", "--", "-m2"},
			[]string{"--model1", "a", "--", "-m2"}),
		Entry("no arguments",
			[]string{},
			[]string{}),
	)

	DescribeTable("leaves shorthand-like flag values alone",
		func(in, want []string) {
			Expect(duetcmder.NormalizeArgs(duetcmder.NewDuetCmd(), in)).To(Equal(want))
		},
		Entry("short topic flag",
			[]string{"-t", "-m1", "-m2", "b"},
			[]string{"-t", "-m1", "--model2", "b"}),
		Entry("long topic flag",
			[]string{"--topic", "-m2"},
			[]string{"--topic", "-m2"}),
		Entry("persistent config-dir flag",
			[]string{"--config-dir", "-m1", "-m1", "a"},
			[]string{"--config-dir", "-m1", "--model1", "a"}),
		Entry("model value of a rewritten shorthand",
			[]string{"-m1", "-m2", "-m2", "b"},
			[]string{"--model1", "-m2", "--model2", "b"}),
	)
})
