// Package document is the capture, assert and conditionally emit pipeline.
//
// A Document is created for one run of a documentation page. Routines append
// prose and code segments to it, capture the source of example blocks and
// assert on the results. Finalize then either writes the rendered Markdown or,
// when anything failed, removes whatever a previous run left at the target path.
//
//	func sums(d *document.Document) {
//		d.Add(segment.Title("Code Block", 1))
//
//		d.BeginCapture("sum_block")
//		sum := 0
//		for i := 1; i <= 10; i++ {
//			sum += i
//		}
//		d.Assert(sum == 55)
//		d.EndCaptureAndLoad("sum_block")
//	}
//
// Assertion failures only mark the document failed; the routine keeps running.
// Structural mistakes (unbalanced guards, duplicate block names, missing
// resources) abort the routine immediately.
package document
