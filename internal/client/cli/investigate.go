package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/veritaslab/veritas/internal/client/api"
	"github.com/veritaslab/veritas/internal/common"
	"github.com/veritaslab/veritas/internal/netx"
)

// Analyze prompts for an evidence source and submits it to the engine. A
// source starting with http:// or https:// is passed as a URL; anything
// else is treated as a local file, uploaded through a presigned URL first.
func (a *App) Analyze(ctx context.Context) error {
	source, err := getSimpleText(a.reader, "Evidence source (URL or local file path)", os.Stdout)
	if err != nil {
		return err
	}
	if source == "" {
		fmt.Println("Nothing to analyze.")
		return nil
	}

	mediaType, err := getSimpleText(a.reader, "Media type (image, video, audio, document)", os.Stdout)
	if err != nil {
		return err
	}

	sub := api.Submission{MediaType: mediaType}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		sub.FileName = filepath.Base(source)
		sub.URL = source
	} else {
		data, err := os.ReadFile(source)
		if err != nil {
			return fmt.Errorf("read evidence file: %w", err)
		}

		key, url, err := a.client.PresignUpload(ctx)
		if err != nil {
			return fmt.Errorf("presign upload: %w", err)
		}
		if err := netx.UploadToPresignedURL(ctx, url, data, ""); err != nil {
			return fmt.Errorf("upload evidence: %w", err)
		}

		sub.FileName = filepath.Base(source)
		sub.EvidenceKey = key
	}

	fmt.Println("Analyzing...")
	rec, err := a.client.Analyze(ctx, sub)
	if err != nil {
		if errors.Is(err, common.ErrUplinkFailure) {
			fmt.Printf("Analysis engine unavailable: %v\n", err)
		}
		return err
	}

	printInvestigation(rec)
	return nil
}

// List prints the operator's investigations, newest information first as
// returned by the backend.
func (a *App) List(ctx context.Context) error {
	recs, err := a.client.List(ctx)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No investigations yet.")
		return nil
	}
	for i := range recs {
		rec := recs[i]
		fmt.Printf("%s  %-10s  %-8s  %5.1f%%  %s\n",
			rec.ID, rec.Status, rec.Verdict, rec.Confidence, rec.FileName)
	}
	return nil
}

// Delete prompts for an investigation id and removes it.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Investigation id to delete", os.Stdout)
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}
	if err := a.client.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

// Purge removes every investigation owned by the operator after an explicit
// confirmation prompt.
func (a *App) Purge(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete ALL your investigations? Type yes to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		fmt.Println("Aborted.")
		return nil
	}

	n, err := a.client.Purge(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Purged %d investigations.\n", n)
	return nil
}

func printInvestigation(rec *api.Investigation) {
	fmt.Printf("Investigation %s (%s)\n", rec.ID, rec.Status)
	if rec.Verdict != "" {
		fmt.Printf("  verdict:    %s\n", rec.Verdict)
		fmt.Printf("  confidence: %.1f%%\n", rec.Confidence)
	}
	if len(rec.Payload) > 0 {
		fmt.Printf("  payload:    %s\n", string(rec.Payload))
	}
}
