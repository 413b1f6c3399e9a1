package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/scenekit/ecs"
)

// EntityBrowser is a paged, filterable table of every entity in a scene:
// id, held components, and the systems currently matching it.
type EntityBrowser struct {
	selectedID         string
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

func NewEntityBrowser(maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{maxEntitiesPerPage: maxEntitiesPerPage}
}

type entityRow struct {
	id         string
	components []string
	systems    []string
}

func (eb *EntityBrowser) Render(scene *ecs.Scene) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	rows := eb.collectRows(scene)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Systems")
		imgui.TableHeadersRow()

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := startIdx + eb.maxEntitiesPerPage
		if endIdx > len(rows) {
			endIdx = len(rows)
		}
		if startIdx > len(rows) {
			startIdx = len(rows)
			eb.currentPage = 0
		}

		for _, row := range rows[startIdx:endIdx] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedID == row.id
			if imgui.SelectableBoolV(row.id, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedID = row.id
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.components, ", "))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.systems, ", "))
		}

		imgui.EndTable()
	}

	if len(rows) > eb.maxEntitiesPerPage {
		totalPages := (len(rows) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(rows)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(rows)))
	}

	imgui.End()
}

func (eb *EntityBrowser) collectRows(scene *ecs.Scene) []entityRow {
	filterLower := strings.ToLower(eb.filterText)

	rows := make([]entityRow, 0, scene.Len())
	for _, e := range scene.Query() {
		components := e.Components()
		sort.Strings(components)

		systems := make([]string, 0, len(e.Systems()))
		for _, sys := range e.Systems() {
			systems = append(systems, SystemLabel(sys))
		}

		if filterLower != "" {
			haystack := strings.ToLower(e.ID() + " " + strings.Join(components, " ") + " " + strings.Join(systems, " "))
			if !strings.Contains(haystack, filterLower) {
				continue
			}
		}

		rows = append(rows, entityRow{id: e.ID(), components: components, systems: systems})
	}
	return rows
}

// SelectedEntity returns the id picked in the table, or "".
func (eb *EntityBrowser) SelectedEntity() string {
	return eb.selectedID
}
