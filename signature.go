package pdfmarker

import (
	"fmt"
	"time"
)

// signatureBoilerplate is the fixed paragraph drawn at the block anchor.
const signatureBoilerplate = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. \n" +
	"Pellentesque fermentum aliquam urna eu bibendum. \n" +
	"Morbi sit amet blandit purus."

// SignatureOptions configures AddSignatureBlock.
type SignatureOptions struct {
	// Page is the 0-based page receiving the block.
	Page int

	// LogoPath locates the logo image.
	LogoPath string

	// PreserveAspect controls how the logo fills its 70x70 frame.
	PreserveAspect bool

	// Now supplies the signature date. Nil means time.Now.
	Now func() time.Time
}

// DefaultSignatureOptions returns the standard block configuration:
// page 0, the bundled Adobe logo, aspect ratio preserved, dated with
// the current day.
func DefaultSignatureOptions() SignatureOptions {
	return SignatureOptions{
		LogoPath:       "resources/adobe_logo.png",
		PreserveAspect: true,
	}
}

// AddSignatureBlock queues the three-part signature block anchored at
// (x, y): the logo in a 70x70 frame 135 points right and 35 points
// down from the anchor, a boilerplate paragraph at the anchor in 6pt
// Helvetica-Bold, and the signer identity 35 points right of the logo
// in 8pt Helvetica-Bold with the date as DD/MM/YYYY. The three parts
// are ordinary annotations on the Editor queue and compose like any
// other.
//
// Example:
//
//	editor := pdfmarker.New("contract.pdf")
//	pdfmarker.AddSignatureBlock(editor, 50, 150, pdfmarker.DefaultSignatureOptions())
//	err := editor.WriteToFile("contract-signed.pdf")
func AddSignatureBlock(e *Editor, x, y float64, opts SignatureOptions) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logoX := x + 135
	logoSize := 70.0

	imageOpts := DefaultImageOptions()
	imageOpts.Page = opts.Page
	imageOpts.Width = &logoSize
	imageOpts.Height = &logoSize
	imageOpts.PreserveAspect = opts.PreserveAspect
	e.AddImageOptions(opts.LogoPath, logoX, y-35, imageOpts)

	textOpts := DefaultTextOptions()
	textOpts.Page = opts.Page
	textOpts.Font = "Helvetica-Bold"
	textOpts.FontSize = 6
	e.AddTextOptions(signatureBoilerplate, x, y, textOpts)

	textOpts.FontSize = 8
	signer := fmt.Sprintf("M. John Doe\nCertified Adobe\nSigné le %s", now().Format("02/01/2006"))
	e.AddTextOptions(signer, logoX+35, y+5, textOpts)
}
