package cliui_test

import (
	"bytes"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/duet/pkg/cliui"
	testutils "github.com/papercomputeco/duet/pkg/utils/test"
)

var _ = Describe("Step", func() {
	It("returns the function's error and prints a fail mark", func() {
		var buf bytes.Buffer
		boom := errors.New("boom")

		err := cliui.Step(&buf, "waiting for gpt-4o", func() error { return boom })
		Expect(err).To(MatchError(boom))
		Expect(buf.String()).To(ContainSubstring("✗ waiting for gpt-4o"))
	})

	It("prints a success mark with elapsed time", func() {
		var buf bytes.Buffer

		err := cliui.Step(&buf, "waiting", func() error { return nil })
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring("✓ waiting"))
		Expect(buf.String()).To(HaveSuffix("ms)\n"))
	})

	It("writes no color escapes to a non-terminal writer", func() {
		DeferCleanup(testutils.ForceStdoutColor())
		var buf bytes.Buffer

		Expect(cliui.Step(&buf, "waiting", func() error { return nil })).To(Succeed())
		Expect(buf.String()).NotTo(ContainSubstring("\x1b["))
	})
})

var _ = Describe("NewStyles", func() {
	BeforeEach(func() {
		DeferCleanup(testutils.ForceStdoutColor())
	})

	It("renders plain text for a buffer even when stdout is colored", func() {
		styles := cliui.NewStyles(&bytes.Buffer{})

		Expect(styles.Name.Render("alpha")).To(Equal("alpha"))
		Expect(styles.Error.Render("❌ failed")).To(Equal("❌ failed"))
		Expect(styles.Key.Render("chat.model1")).To(Equal("chat.model1"))
	})

	It("marks success and failure", func() {
		styles := cliui.NewStyles(&bytes.Buffer{})

		Expect(styles.Mark(nil)).To(Equal("✓"))
		Expect(styles.Mark(errors.New("boom"))).To(Equal("✗"))
	})
})

var _ = Describe("FormatDuration", func() {
	It("uses milliseconds under a second", func() {
		Expect(cliui.FormatDuration(12 * time.Millisecond)).To(Equal("12ms"))
	})

	It("uses one decimal of seconds otherwise", func() {
		Expect(cliui.FormatDuration(3200 * time.Millisecond)).To(Equal("3.2s"))
	})
})

var _ = Describe("Rule", func() {
	It("repeats the character", func() {
		Expect(cliui.Rule("=", 3)).To(Equal("==="))
		Expect(cliui.Rule("-", 0)).To(BeEmpty())
	})
})

var _ = Describe("RenderMarkdown", func() {
	It("keeps the text content", func() {
		out, err := cliui.RenderMarkdown("# Saturn\n\nSaturn could **float** in water.")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Saturn"))
		Expect(out).To(ContainSubstring("float"))
	})
})
