// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package gantt

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/Pougnator/BOT-Ratatouille/internal/schedule"
)

// GanttProject file format constants. Version matches the GanttProject
// release the export was written against.
const (
	ganttProjectVersion = "3.2.3230"
	ganttProjectCompany = "Robotatouille"

	// workingDayMinutes converts step minutes to GanttProject working-day
	// durations (eight-hour days).
	workingDayMinutes = 60 * 8
)

type ganProject struct {
	XMLName   xml.Name `xml:"project"`
	Name      string   `xml:"name,attr"`
	Company   string   `xml:"company,attr"`
	WebLink   string   `xml:"webLink,attr"`
	ViewDate  string   `xml:"view-date,attr"`
	Version   string   `xml:"version,attr"`
	ViewIndex string   `xml:"view-index,attr"`

	Description string   `xml:"description"`
	Tasks       ganTasks `xml:"tasks"`
	Resources   struct{} `xml:"resources"`
	Allocations struct{} `xml:"allocations"`
	Vacations   struct{} `xml:"vacations"`
}

type ganTasks struct {
	Tasks []ganTask `xml:"task"`
}

type ganTask struct {
	ID             int         `xml:"id,attr"`
	Name           string      `xml:"name,attr"`
	Start          int         `xml:"start,attr"`
	Duration       float64     `xml:"duration,attr"`
	Complete       int         `xml:"complete,attr"`
	Expand         bool        `xml:"expand,attr"`
	CostManual     float64     `xml:"cost-manual-value,attr"`
	CostCalculated bool        `xml:"cost-calculated,attr"`
	Depends        []ganDepend `xml:"depend"`
}

// ganDepend records a finish-to-start dependency. It is attached to the
// dependent task and references the predecessor's GanttProject ID.
type ganDepend struct {
	ID         int    `xml:"id,attr"`
	Type       int    `xml:"type,attr"`
	Difference int    `xml:"difference,attr"`
	Hardness   string `xml:"hardness,attr"`
}

// GanttProjectExporter writes schedules as GanttProject .gan XML documents.
type GanttProjectExporter struct {
	// Enabled is the capability flag resolved at startup.
	Enabled bool

	// Now is the clock used for the project view date; nil uses time.Now.
	Now func() time.Time
}

// Export serializes the schedule for the named recipe and returns the XML
// document bytes.
//
// GanttProject task IDs are sequential integers; step starts become days
// since the Unix epoch and durations eight-hour working days, per the .gan
// format.
func (e *GanttProjectExporter) Export(s *schedule.Schedule, recipeName string) ([]byte, error) {
	if !e.Enabled {
		return nil, ErrRenderUnavailable
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	doc := ganProject{
		Name:      recipeName,
		Company:   ganttProjectCompany,
		ViewDate:  now().Format("2006-01-02"),
		Version:   ganttProjectVersion,
		ViewIndex: "0",

		Description: fmt.Sprintf("Gantt chart for recipe: %s", recipeName),
	}

	epoch := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	gpID := make(map[string]int, len(s.Steps))
	for i, step := range s.Steps {
		gpID[step.ID] = i + 1
	}

	for i, step := range s.Steps {
		task := ganTask{
			ID:       i + 1,
			Name:     step.Description,
			Start:    int(step.Start.Sub(epoch).Hours() / 24),
			Duration: step.DurationMinutes / workingDayMinutes,
			Complete: 0,
			Expand:   true,
		}
		for _, dep := range step.Dependencies {
			pred, ok := gpID[dep]
			if !ok {
				continue
			}
			task.Depends = append(task.Depends, ganDepend{
				ID:         pred,
				Type:       2, // finish-to-start
				Difference: 0,
				Hardness:   "Strong",
			})
		}
		doc.Tasks.Tasks = append(doc.Tasks.Tasks, task)
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("gantt: marshalling ganttproject document: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
