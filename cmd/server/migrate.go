package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/kaimahi/ergosurvey/internal/api"
	"github.com/kaimahi/ergosurvey/internal/services"
)

// loadSnapshotIfNeeded performs a one-time load of a previously exported CSV
// snapshot into an empty store. A populated store is left alone.
func loadSnapshotIfNeeded(store api.Store, snapshotPath string) error {
	if snapshotPath == "" {
		return nil
	}
	if store.CountRecords() > 0 {
		return nil
	}
	data, err := os.ReadFile(snapshotPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read snapshot: %w", err)
	}
	recs, err := services.ParseRecordsCSV(data)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", snapshotPath, err)
	}
	for _, r := range recs {
		r.ID = strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	}
	store.ReplaceRecords(recs)
	log.Printf("loaded %d records from snapshot %s", len(recs), snapshotPath)
	return nil
}
