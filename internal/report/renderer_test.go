package report

import (
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "takeon/internal/catalog/models"
	"takeon/internal/progress/models"
	id "takeon/pkg/domain"
)

func displayRecord(description string, party catalog.Party, complete bool) models.DisplayRecord {
	return models.DisplayRecord{
		Record: models.Record{
			ID:       id.NewRecordID(),
			SchemeID: id.NewSchemeID(),
			Party:    party,
			Complete: complete,
		},
		Description: description,
	}
}

func TestRender(t *testing.T) {
	t.Run("produces a PDF document", func(t *testing.T) {
		records := []models.DisplayRecord{
			displayRecord("Obtain conduct rules", catalog.PartyPretor, true),
		}

		content, err := NewRenderer().Render("Villa Toscana", records)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "%PDF-"))
	})

	t.Run("renders with no records at all", func(t *testing.T) {
		content, err := NewRenderer().Render("Villa Toscana", nil)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "%PDF-"))
	})

	t.Run("survives descriptions that wrap across many lines", func(t *testing.T) {
		long := strings.Repeat("obtain certified copies of the conduct rules ", 20)
		records := []models.DisplayRecord{
			displayRecord(long, catalog.PartyPretor, false),
		}

		_, err := NewRenderer().Render("Villa Toscana", records)
		require.NoError(t, err)
	})
}

func TestBuildRows(t *testing.T) {
	t.Run("includes only Pretor records", func(t *testing.T) {
		records := []models.DisplayRecord{
			displayRecord("internal item", catalog.PartyPretor, true),
			displayRecord("agent item", catalog.PartyPMA, true),
		}

		rows := buildRows(records)
		require.Len(t, rows, 1)
		assert.Equal(t, "internal item", rows[0].description)
	})

	t.Run("placeholder row when nothing qualifies", func(t *testing.T) {
		records := []models.DisplayRecord{
			displayRecord("agent item", catalog.PartyPMA, true),
		}

		rows := buildRows(records)
		require.Len(t, rows, 1)
		assert.Equal(t, placeholderText, rows[0].description)
		assert.Equal(t, "Pending", rows[0].status)
		assert.Equal(t, absentGlyph, rows[0].date)
		assert.Equal(t, absentGlyph, rows[0].completedBy)
	})

	t.Run("derives status and fills absent fields", func(t *testing.T) {
		date := id.Date{Year: 2024, Month: time.March, Day: 1}
		operator := models.OperatorBookkeeper

		done := displayRecord("done item", catalog.PartyPretor, true)
		done.DateCompleted = &date
		done.CompletedBy = &operator
		pending := displayRecord("pending item", catalog.PartyPretor, false)

		rows := buildRows([]models.DisplayRecord{done, pending})
		require.Len(t, rows, 2)

		assert.Equal(t, "Complete", rows[0].status)
		assert.Equal(t, "2024-03-01", rows[0].date)
		assert.Equal(t, "Bookkeeper", rows[0].completedBy)

		assert.Equal(t, "Pending", rows[1].status)
		assert.Equal(t, absentGlyph, rows[1].date)
		assert.Equal(t, absentGlyph, rows[1].completedBy)
	})
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "plain text", sanitize("plain text"))
	assert.Equal(t, "caf latt", sanitize("café latté"))
	assert.Equal(t, "tabnewline", sanitize("tab\tnew\nline"))
	assert.Equal(t, "", sanitize("日本語"))
}

func TestRowHeight(t *testing.T) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 10)

	r := NewRenderer()

	t.Run("short text is one line high", func(t *testing.T) {
		lines, height := r.rowHeight(pdf, "short")
		assert.Len(t, lines, 1)
		assert.Equal(t, lineHeight, height)
	})

	t.Run("empty text still occupies one line", func(t *testing.T) {
		lines, height := r.rowHeight(pdf, "")
		assert.Len(t, lines, 1)
		assert.Equal(t, lineHeight, height)
	})

	t.Run("height scales with wrapped line count", func(t *testing.T) {
		long := strings.Repeat("levy clearance certificates ", 15)
		lines, height := r.rowHeight(pdf, long)
		assert.Greater(t, len(lines), 1)
		assert.Equal(t, float64(len(lines))*lineHeight, height)
	})
}
