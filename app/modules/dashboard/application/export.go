package dashboardservice

import (
	"fmt"
	"io"
	"time"

	eventdomain "github.com/raynzz/eventdesk/app/modules/event/domain"
	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the export workbook, in order.
const (
	SheetEvents       = "Events"
	SheetProviders    = "Providers"
	SheetTeamMembers  = "Team Members"
	SheetParticipants = "Participants"
)

const exportDateLayout = "2006-01-02 15:04"

type exportData struct {
	events       []eventdomain.Event
	providers    []providerdomain.Provider
	members      []providerdomain.TeamMember
	participants []eventdomain.Participant
}

type sheet struct {
	name   string
	header []any
	rows   [][]any
	widths []float64
}

func (d exportData) sheets() []sheet {
	eventNames := make(map[directus.ID]string, len(d.events))
	for _, e := range d.events {
		eventNames[e.ID] = e.Name
	}
	providerNames := make(map[directus.ID]string, len(d.providers))
	for _, p := range d.providers {
		providerNames[p.ID] = p.Name
	}

	events := sheet{
		name:   SheetEvents,
		header: []any{"ID", "Name", "Status", "Start", "End", "Location", "Capacity", "Organizer"},
		widths: []float64{8, 32, 12, 18, 18, 28, 10, 24},
	}
	for _, e := range d.events {
		events.rows = append(events.rows, []any{
			e.ID.String(), e.Name, string(e.Status), formatDate(e.StartDate), formatDate(e.EndDate),
			e.Location, e.Capacity, e.Organizer,
		})
	}

	providers := sheet{
		name:   SheetProviders,
		header: []any{"ID", "Name", "Contact", "Email", "Phone", "Category", "Tax ID", "Status"},
		widths: []float64{8, 32, 24, 28, 16, 18, 16, 10},
	}
	for _, p := range d.providers {
		providers.rows = append(providers.rows, []any{
			p.ID.String(), p.Name, p.ContactName, p.Email, p.Phone, p.Category, p.TaxID, string(p.Status),
		})
	}

	members := sheet{
		name:   SheetTeamMembers,
		header: []any{"ID", "Last name", "First name", "Provider", "Event", "Role", "Email", "Phone", "Document"},
		widths: []float64{8, 20, 20, 28, 28, 18, 28, 16, 16},
	}
	for _, m := range d.members {
		members.rows = append(members.rows, []any{
			m.ID.String(), m.LastName, m.FirstName, providerNames[m.ProviderID], eventNames[m.EventID],
			m.Role, m.Email, m.Phone, m.DocumentNumber,
		})
	}

	participants := sheet{
		name:   SheetParticipants,
		header: []any{"ID", "Event", "Provider", "Status", "Notes"},
		widths: []float64{8, 32, 32, 12, 40},
	}
	for _, p := range d.participants {
		participants.rows = append(participants.rows, []any{
			p.ID.String(), eventNames[p.EventID], providerNames[p.ProviderID], string(p.Status), p.Notes,
		})
	}

	return []sheet{events, providers, members, participants}
}

func writeWorkbook(w io.Writer, data exportData) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, sh := range data.sheets() {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sh.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return fmt.Errorf("create sheet %q: %w", sh.name, err)
		}

		if err := f.SetSheetRow(sh.name, "A1", &sh.header); err != nil {
			return fmt.Errorf("sheet %q header: %w", sh.name, err)
		}
		if err := f.SetRowStyle(sh.name, 1, 1, bold); err != nil {
			return fmt.Errorf("sheet %q header style: %w", sh.name, err)
		}
		for r, row := range sh.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
				return fmt.Errorf("sheet %q row %d: %w", sh.name, r+2, err)
			}
		}
		for c, width := range sh.widths {
			col, err := excelize.ColumnNumberToName(c + 1)
			if err != nil {
				return err
			}
			if err := f.SetColWidth(sh.name, col, col, width); err != nil {
				return fmt.Errorf("sheet %q width: %w", sh.name, err)
			}
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(exportDateLayout)
}
