package controller

import (
	"time"

	m "github.com/mouse-blink/guardpatch/internal/model"
)

func sampleRun() m.RunReport {
	return m.RunReport{
		RunID:     "0f8fad5b-d9cb-469f-a165-70867728950e",
		Command:   "apply",
		StartedAt: time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC),
		Files: []m.PatchReport{
			{
				Target: "app/actions/invoices.ts",
				Outcomes: []m.PatchOutcome{
					{Function: "updateInvoice", Status: m.StatusApplied},
					{Function: "deleteInvoice", Status: m.StatusAlreadyPresent},
				},
				Backup:  "app/actions/invoices.ts.backup_20240309_140507",
				Written: true,
			},
			{
				Target: "app/actions/clients.ts",
				Outcomes: []m.PatchOutcome{
					{Function: "listClients", Status: m.StatusFunctionNotFound, Reason: "function not found"},
				},
				Duplicates: 1,
			},
		},
	}
}
