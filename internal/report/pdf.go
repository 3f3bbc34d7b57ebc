package report

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/ficotempo/competency-exam/internal/exam/scoring"
	"github.com/ficotempo/competency-exam/internal/metrics"
)

const competentThreshold = 70

// Data feeds the result sheet template.
type Data struct {
	FullName   string
	Contact    string
	PrintedAt  string
	FinalScore int
	Verdict    string
	Summary    string
	Categories []scoring.CategoryScore
}

// Generator renders result sheets to PDF via headless Chrome.
type Generator struct {
	tmpl    *template.Template
	timeout time.Duration
	logger  zerolog.Logger
}

// NewGenerator parses the embedded template. Zero timeout defaults to 30s,
// covering Chrome startup on a cold instance.
func NewGenerator(timeout time.Duration, logger zerolog.Logger) (*Generator, error) {
	tmpl, err := template.New("result").Parse(resultTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse result template: %w", err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Generator{
		tmpl:    tmpl,
		timeout: timeout,
		logger:  logger.With().Str("component", "report_generator").Logger(),
	}, nil
}

// Render produces the PDF result sheet for one participant.
func (g *Generator) Render(ctx context.Context, fullName, contact string, result scoring.Result) ([]byte, error) {
	verdict := "PERLU EVALUASI"
	if result.FinalScore >= competentThreshold {
		verdict = "KOMPETEN"
	}
	if contact == "" {
		contact = "-"
	}

	data := Data{
		FullName:   fullName,
		Contact:    contact,
		PrintedAt:  time.Now().Format("02-01-2006 15:04"),
		FinalScore: result.FinalScore,
		Verdict:    verdict,
		Summary:    result.Summary,
		Categories: result.Categories,
	}

	var rendered bytes.Buffer
	if err := g.tmpl.Execute(&rendered, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	pdf, err := g.printToPDF(ctx, rendered.String())
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}

	metrics.ReportsRendered.Inc()
	g.logger.Info().Str("participant", fullName).Int("bytes", len(pdf)).Msg("result report rendered")
	return pdf, nil
}

func (g *Generator) printToPDF(parent context.Context, htmlContent string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(parent, g.timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(ctx)
	defer browserCancel()

	var pdfBuffer []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}
