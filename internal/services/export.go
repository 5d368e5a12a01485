package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"tasktracker/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	noProjectLabel  = "Sin proyecto"
	unassignedLabel = "Sin asignar"
	xlsxSheetName   = "Tareas"
)

// ExportHeader is the fixed column header of task exports
var ExportHeader = []string{
	"ID",
	"Título",
	"Descripción",
	"Estado",
	"Prioridad",
	"Proyecto",
	"Asignado a",
	"Fecha límite",
	"Horas estimadas",
	"Horas reales",
}

// ExportRow returns the export columns of a resolved task
func ExportRow(t models.TaskResponse) []string {
	project := t.ProjectName
	if t.ProjectID == nil || project == "" {
		project = noProjectLabel
	}
	assignee := t.AssignedToUsername
	if t.AssignedTo == nil || assignee == "" {
		assignee = unassignedLabel
	}
	return []string{
		t.ID,
		t.Title,
		t.Description,
		t.Status,
		t.Priority,
		project,
		assignee,
		t.DueDate,
		formatHours(t.EstimatedHours),
		formatHours(t.ActualHours),
	}
}

// WriteTasksCSV writes the header and one quoted-as-needed row per task
func WriteTasksCSV(w io.Writer, tasks []models.TaskResponse) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, t := range tasks {
		if err := cw.Write(ExportRow(t)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTasksXLSX writes the same rows as WriteTasksCSV into a workbook
func WriteTasksXLSX(w io.Writer, tasks []models.TaskResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(ExportHeader))
	for i, h := range ExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(xlsxSheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, t := range tasks {
		cols := ExportRow(t)
		row := make([]interface{}, len(cols))
		for j, c := range cols {
			row[j] = c
		}
		// hours stay numeric so spreadsheet formulas work on them
		row[8] = t.EstimatedHours
		row[9] = t.ActualHours

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(xlsxSheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(xlsxSheetName, "A", "A", 26); err != nil {
		return err
	}
	if err := f.SetColWidth(xlsxSheetName, "B", "C", 40); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
