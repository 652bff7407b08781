// Package guide is the bundled user guide. It documents the library by using
// it: every example below is executed, asserted and captured into
// Guide_How2use.md.
package guide

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"git.home.luguber.info/inful/how2use/assert"
	"git.home.luguber.info/inful/how2use/document"
	"git.home.luguber.info/inful/how2use/segment"
)

// Name is the document name of the guide.
const Name = "Guide_How2use"

//go:embed guide.go
var source []byte

// sourcePath is this file as runtime.Caller reports it, which is also how the
// capture sites of the guide are reported.
var sourcePath = func() string {
	_, file, _, _ := runtime.Caller(0)
	return file
}()

//go:embed md_materials
var materials embed.FS

// Routines returns the sections of the guide in order.
func Routines() []document.Routine {
	return []document.Routine{
		intro,
		mathExpression,
		codeBlock,
		assertions,
		externalResources,
		guards,
		literalHelpers,
		outro,
	}
}

// Registrar is satisfied by *registry.Registry.
type Registrar interface {
	Register(name string, routines ...document.Routine) error
}

// Register adds the guide to r.
func Register(r Registrar) error {
	return r.Register(Name, Routines()...)
}

// ReadSource reads capture sites. The guide's own file is served from the
// binary so a built executable does not depend on the source tree.
func ReadSource(path string) ([]byte, error) {
	if path == sourcePath {
		return slices.Clone(source), nil
	}
	return os.ReadFile(path)
}

// Materials returns the bundled materials directory.
func Materials() fs.FS {
	sub, err := fs.Sub(materials, "md_materials")
	if err != nil {
		panic(err)
	}
	return sub
}

// InstallMaterials copies bundled materials missing from dir. Existing files
// are left untouched. It returns the names of the files written.
func InstallMaterials(dir string) ([]string, error) {
	var written []string
	err := fs.WalkDir(Materials(), ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(name))
		if _, statErr := os.Stat(target); statErr == nil {
			return nil
		}
		data, err := fs.ReadFile(Materials(), name)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
		written = append(written, name)
		return nil
	})
	return written, err
}

func intro(d *document.Document) {
	d.Add(
		segment.Title("Introduction", 1),
		segment.Text("This library helps you write manuals for a code library together with its example code."),
		segment.Newline(),
		segment.Text("You create the documents in Markdown just by writing example code."),
		segment.EmptyLine(),
	)
}

func mathExpression(d *document.Document) {
	d.Add(
		segment.Title("Math Expression", 1),
		segment.Text("Markdown supports mathematical expressions written in LaTeX syntax."),
		segment.Newline(),
	)
	d.LoadCodeBlock("math_expression_ex")
	d.Add(segment.Newline())

	d.BeginCapture("math_expression_ex")
	d.Add(segment.Text(`$$ \sum_{n = 1}^{\infty}{n^{-2}} = \frac{\pi^{2}}{6} $$`))
	d.EndCapture("math_expression_ex")

	d.Add(segment.EmptyLine())
}

func codeBlock(d *document.Document) {
	d.Add(
		segment.Title("Code Block", 1),
		segment.Text(`"BeginCapture" and "EndCapture" capture the source lines between them.`),
		segment.Newline(),
	)

	d.BeginCapture("code_block_example_show")

	d.BeginCapture("code_block_ex")
	sum := 0
	for i := 1; i <= 10; i++ {
		sum += i
	}
	d.Assert(sum == 55)
	d.EndCapture("code_block_ex")

	d.EndCapture("code_block_example_show")

	d.LoadCodeBlock("code_block_example_show")
	d.Add(segment.EmptyLine())
}

func assertions(d *document.Document) {
	d.Add(
		segment.Title("Helper Functions for Assertion", 1),
		segment.Text("Besides showing code you can assert that its result is correct. "),
		segment.Text("When an assertion fails, a log message is printed and the Markdown document is not written "),
		segment.Text("(a document left by an earlier run is removed). "),
		segment.Text("A document that was written is therefore backed by passing examples."),
		segment.EmptyLine(),
	)

	d.Add(
		segment.Title("Assert", 2),
		segment.Text(`"Assert" checks that a boolean expression is true.`),
		segment.Newline(),
	)

	d.BeginCapture("is_true_ex")
	result := 1 + 1

	d.Assert(result == 2)
	d.EndCaptureAndLoad("is_true_ex")

	d.Add(segment.EmptyLine())

	d.Add(
		segment.Title("AreAllTrue / AreNTrue", 2),
		segment.Text(`"assert.AreAllTrue" checks whether every element of a slice satisfies a predicate. `),
		segment.Text(`"assert.AreNTrue" does the same for the first n elements of a sequence `),
		segment.Text("and reports a range error when the sequence is shorter than n."),
		segment.Newline(),
	)

	d.BeginCapture("are_all_true_ex")
	{
		values := []int{2, 4, 6, 8, 10, 12}

		isEven := func(n int) bool { return n%2 == 0 }
		isLessThan10 := func(n int) bool { return n < 10 }

		firstFour, err := assert.AreNTrue(slices.Values(values), 4, isLessThan10)
		d.AssertNoError(err)

		d.Assert(assert.AreAllTrue(values, isEven) && firstFour)
	}
	d.EndCaptureAndLoad("are_all_true_ex")

	d.Add(segment.EmptyLine())

	d.Add(
		segment.Title("AreAllEquivalentTo / AreNEquivalentTo", 2),
		segment.Text(`"assert.AreAllEquivalentTo" checks whether every element of a slice equals a value. `),
		segment.Text(`The "Func" variants take the function that decides equivalence (== by default). `),
		segment.Text(`"assert.AreNEquivalentTo" does the same for the first n elements of a sequence.`),
		segment.Newline(),
	)

	d.BeginCapture("are_all_equivalent_ex")
	{
		values := []int{7, 7, 7, 7}

		d.Assert(assert.AreAllEquivalentTo(values, 7))
	}
	{
		values0 := []int{7, 7, 7, -7, -7}
		values1 := []int{3, 5, 7, 7, 7, -7, -7, -5, -3}

		sameAbs := func(a, b int) bool {
			if a < 0 {
				a = -a
			}
			if b < 0 {
				b = -b
			}
			return a == b
		}

		firstThree, err := assert.AreNEquivalentTo(slices.Values(values0), 3, 7)
		d.AssertNoError(err)
		middleThree, err := assert.AreNEquivalentTo(slices.Values(values1[2:]), 3, 7)
		d.AssertNoError(err)
		middleFive, err := assert.AreNEquivalentToFunc(slices.Values(values1[2:]), 5, 7, sameAbs)
		d.AssertNoError(err)

		d.Assert(assert.AreAllEquivalentToFunc(values0, 7, sameAbs) && firstThree && middleThree && middleFive)
	}
	d.EndCaptureAndLoad("are_all_equivalent_ex")

	d.Add(segment.EmptyLine())

	d.Add(
		segment.Title("AreEquivalentRanges", 2),
		segment.Text(`"assert.AreEquivalentRanges" checks whether two slices have the same length `),
		segment.Text("and the same elements in the same order. "),
		segment.Text(`"assert.AreEquivalentRangesFunc" takes the function that decides equivalence.`),
		segment.Newline(),
	)

	d.BeginCapture("are_equivalent_ranges_ex")
	{
		values0 := []int{2, 4, 6, 8}
		values1 := []int{2, 4, 6, 8}
		values2 := []int{2, -4, 6, -8}

		sameAbs := func(a, b int) bool {
			if a < 0 {
				a = -a
			}
			if b < 0 {
				b = -b
			}
			return a == b
		}

		d.Assert(assert.AreEquivalentRanges(values0, values1) &&
			assert.AreEquivalentRangesFunc(values1, values2, sameAbs))
	}
	d.EndCaptureAndLoad("are_equivalent_ranges_ex")

	d.Add(segment.EmptyLine())
}

func externalResources(d *document.Document) {
	d.Add(
		segment.Title("External Resources", 1),
		segment.Text(`Materials attached to a document are located in the "md_materials" directory.`),
		segment.EmptyLine(),
	)

	d.Add(
		segment.Title("Text File", 2),
		segment.Text(`Use "LoadDescriptionFile".`),
		segment.Newline(),
	)
	d.LoadCodeBlock("description_file_ex")
	d.Add(segment.Newline())

	d.WithBlockGuard(func() {
		d.BeginCapture("description_file_ex")
		d.LoadDescriptionFile("YOLO.txt")
		d.EndCapture("description_file_ex")
	})

	d.Add(segment.EmptyLine())

	d.Add(
		segment.Title("Image File", 2),
		segment.Text(`Use "LoadImage".`),
		segment.Newline(),
	)
	d.LoadCodeBlock("image_ex")
	d.Add(segment.Newline())

	d.BeginCapture("image_ex")
	d.WithHTMLGuard("center", func() {
		d.LoadImage("sample_image.png", 720)
	})
	d.EndCapture("image_ex")

	d.Add(
		segment.EmptyLine(),
		segment.Text("The second argument is the display width. "),
		segment.Text("Pass 0 to show the image at its original size."),
		segment.EmptyLine(),
	)
}

func guards(d *document.Document) {
	d.Add(
		segment.Title("Guards", 1),
		segment.Title("Block Guard", 2),
	)
	d.LoadCodeBlock("block_guard_ex")
	d.Add(segment.Newline())

	d.BeginCapture("block_guard_ex")
	func() {
		defer d.BlockGuard().Close()

		d.Add(
			segment.Text("Until the guard is closed, all contents are in a quoted block."),
			segment.Newline(),
		)
	}()
	d.EndCapture("block_guard_ex")

	d.Add(segment.Newline(), segment.Title("HTML Guard", 2))
	d.LoadCodeBlock("html_guard_ex")
	d.Add(segment.Newline())

	d.BeginCapture("html_guard_ex")
	d.WithHTMLGuard("center strong blockquote", func() {
		d.Add(
			segment.Text("Until the guard is closed, all contents are centered, emphasized and quoted."),
			segment.Newline(),
		)
	})
	d.EndCapture("html_guard_ex")

	d.Add(
		segment.EmptyLine(),
		segment.Text(`Short messages can be wrapped with "segment.HTMLTag" instead.`),
		segment.Newline(),
	)
	d.LoadCodeBlock("html_tag_ex")
	d.Add(segment.Newline())

	d.BeginCapture("html_tag_ex")
	d.Add(segment.HTMLTag("HTML tags around a short message.", "center strong blockquote"))
	d.EndCapture("html_tag_ex")

	d.Add(segment.EmptyLine())
}

func literalHelpers(d *document.Document) {
	d.Add(
		segment.Title("Text Helpers", 1),
		segment.Title("Prose", 2),
	)
	d.LoadCodeBlock("prose_ex")
	d.Add(segment.Newline())

	d.BeginCapture("prose_ex")
	d.Add(segment.Prose(`
			If you want to write something verbose,
			segment.Prose should be helpful.

			Describe what you want to explain freely,
			as if you were writing a normal comment.
			The common indentation on the left is removed.
		`))
	d.EndCapture("prose_ex")

	d.Add(segment.EmptyLine())

	d.Add(
		segment.Title("Pseudo Code", 2),
		segment.Text("Pseudo code that does not run can explain a logic better than real code. "),
		segment.Text(`"segment.PseudoCode" turns indented text into an untyped code block.`),
		segment.Newline(),
	)
	d.LoadCodeBlock("pseudo_code_ex")
	d.Add(segment.Newline())

	d.BeginCapture("pseudo_code_ex")
	d.Add(segment.PseudoCode(`
			SelectionSort(A[], n)
			    for last <- n downto 2
			        find the greatest element A[k] among A[1...last]
			        swap A[k] and A[last]
		`))
	d.EndCapture("pseudo_code_ex")

	d.Add(segment.EmptyLine())
}

func outro(d *document.Document) {
	d.Add(
		segment.Text("----"),
		segment.Newline(),
		segment.HTMLTag("Thank you for reading", "strong center"),
		segment.Newline(),
	)
}
