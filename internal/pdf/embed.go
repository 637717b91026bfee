// Package pdf attaches Factur-X XML to PDF files and reads it back out.
// It only handles the attachment transport; making the result a conforming
// PDF/A-3 hybrid is the caller's concern.
package pdf

import (
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/cli"

	"github.com/rezonia/facturx/internal/model"
)

// AttachmentName is the file name a Factur-X attachment must carry.
const AttachmentName = "factur-x.xml"

// attachmentNames lists the names under which invoice XML is attached in
// the wild, in lookup order. zugferd-invoice.xml is the pre-1.0 name.
var attachmentNames = []string{AttachmentName, "zugferd-invoice.xml"}

// Embed attaches the invoice XML to the PDF at inPath and writes the
// combined document to outPath. inPath and outPath may be the same file.
func Embed(inPath, outPath string, xml []byte) error {
	dir, err := os.MkdirTemp("", "facturx-embed")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	attachment := filepath.Join(dir, AttachmentName)
	if err := os.WriteFile(attachment, xml, 0o600); err != nil {
		return err
	}

	// pdfcpu refuses in-place writes, so go through a sibling temp file.
	tmp := filepath.Join(dir, "out.pdf")
	if err := api.AddAttachmentsFile(inPath, tmp, []string{attachment}, false, nil); err != nil {
		return err
	}
	data, err := os.ReadFile(tmp)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}

// Extract returns the invoice XML attached to the PDF at path. The
// attachment is looked up under the known Factur-X and ZUGFeRD names; a PDF
// without one yields a *model.ParseError.
func Extract(path string) ([]byte, error) {
	attached, err := cli.ListAttachmentsFile(path, nil)
	if err != nil {
		return nil, model.NewParseError("", "not a readable PDF", err)
	}
	name := attachmentName(attached)
	if name == "" {
		return nil, model.NewParseError("",
			"PDF carries no Factur-X XML attachment", nil)
	}

	dir, err := os.MkdirTemp("", "facturx-extract")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := api.ExtractAttachmentsFile(path, dir, []string{name}, nil); err != nil {
		return nil, model.NewParseError("", "extracting "+name, err)
	}
	return os.ReadFile(filepath.Join(dir, name))
}

// attachmentName picks the best known invoice attachment name from a
// listing. Listing entries may carry a trailing description.
func attachmentName(attached []string) string {
	for _, candidate := range attachmentNames {
		for _, entry := range attached {
			if entry == candidate || filepath.Base(entry) == candidate {
				return candidate
			}
		}
	}
	return ""
}
