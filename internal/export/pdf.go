package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// pdfEpoch stamps artifacts so identical documents produce identical bytes.
var pdfEpoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// pageWriter appends one full-bleed raster page per slide.
type pageWriter struct {
	pdf    *gofpdf.Fpdf
	width  float64
	height float64
	pages  int
}

func newPageWriter(title string, width, height float64) *pageWriter {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetModificationDate(pdfEpoch)
	pdf.SetCreator("carousel", true)
	if title != "" {
		pdf.SetTitle(title, true)
	}
	return &pageWriter{pdf: pdf, width: width, height: height}
}

// addPage places img so it covers the page exactly, whatever its pixel
// density.
func (w *pageWriter) addPage(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode page: %w", err)
	}
	encoded := buf.Bytes()

	name := fmt.Sprintf("page-%d", w.pages+1)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	w.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(encoded))
	w.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w.width, Ht: w.height})
	w.pdf.ImageOptions(name, 0, 0, w.width, w.height, false, opts, 0, "")
	if err := w.pdf.Error(); err != nil {
		return nil, err
	}
	w.pages++
	return encoded, nil
}

func (w *pageWriter) bytes() ([]byte, error) {
	var out bytes.Buffer
	if err := w.pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return out.Bytes(), nil
}
