package posts

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"dailyjournal/middleware"
	"dailyjournal/models"
)

// Export downloads the requester's whole journal as a PDF.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.UserID(r)

	journal, err := h.Store.List(r.Context(), userID, 0)
	if err != nil {
		log.Printf("export: list posts for %s: %v", userID, err)
		http.Error(w, "Failed to export journal", http.StatusInternalServerError)
		return
	}

	pdf, err := buildJournalPDF(middleware.Username(r), h.BaseURL, journal)
	if err != nil {
		log.Printf("export: build pdf for %s: %v", userID, err)
		http.Error(w, "Failed to export journal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="journal.pdf"`)
	w.Write(pdf)
}

// buildJournalPDF lays out one page header with a QR link back to the
// journal, followed by every post in reverse chronological order.
func buildJournalPDF(username, baseURL string, journal []models.Post) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "Daily Journal")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, username)
	pdf.Ln(6)
	pdf.Cell(0, 8, "Exported "+time.Now().Format("2 Jan 2006"))
	pdf.Ln(10)

	if baseURL != "" {
		qrPNG, err := qrcode.Encode(baseURL+"/seeall", qrcode.Medium, 256)
		if err != nil {
			return nil, err
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("journal-qr", opts, bytes.NewReader(qrPNG))
		pdf.ImageOptions("journal-qr", 160, 10, 30, 30, false, opts, 0, "")
	}

	for _, post := range journal {
		pdf.SetFont("Arial", "B", 14)
		pdf.MultiCell(0, 8, post.Title, "", "L", false)
		pdf.SetFont("Arial", "I", 9)
		pdf.Cell(0, 6, post.CreatedAt.Format("2 Jan 2006 15:04"))
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, post.Content, "", "L", false)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
