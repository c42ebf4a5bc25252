package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"pathways-backend-go/internal/models"
)

func TestGoalLifecycle(t *testing.T) {
	m := newMemStore()
	ctx := context.Background()
	input := models.GoalInput{
		Title: "  Learn   Go ", Description: "Build a backend service end to end", Category: "technical",
	}
	goal, entry, err := CreateGoal(ctx, m, "student-1", input, "user-1", "")
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	if goal.Status != "active" || goal.Priority != "medium" || goal.Title != "Learn Go" {
		t.Fatalf("unexpected goal %+v", goal)
	}
	if entry == nil || entry.Action != ActionGoalCreated {
		t.Fatalf("unexpected log %+v", entry)
	}

	steps := []struct {
		to     string
		status int
	}{
		{to: "paused", status: 0},
		{to: "paused", status: 0},
		{to: "completed", status: http.StatusBadRequest},
		{to: "active", status: 0},
		{to: "completed", status: 0},
		{to: "active", status: http.StatusBadRequest},
		{to: "", status: 0},
	}
	for _, step := range steps {
		in := input
		in.Status = step.to
		_, _, err := UpdateGoal(ctx, m, "student-1", goal.ID, in, "user-1", "")
		if step.status == 0 && err != nil {
			t.Fatalf("transition to %q: %v", step.to, err)
		}
		if step.status != 0 && serviceStatus(t, err) != step.status {
			t.Fatalf("transition to %q: status %d", step.to, serviceStatus(t, err))
		}
	}
	if got := m.goals[goal.ID].Status; got != "completed" {
		t.Fatalf("final status = %q, want completed", got)
	}

	if _, _, err := UpdateGoal(ctx, m, "student-2", goal.ID, input, "user-2", ""); serviceStatus(t, err) != http.StatusNotFound {
		t.Fatal("goal reachable through another student")
	}
	if _, err := DeleteGoal(ctx, m, "student-1", goal.ID, "user-1", ""); err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}
	if _, err := DeleteGoal(ctx, m, "student-1", goal.ID, "user-1", ""); serviceStatus(t, err) != http.StatusNotFound {
		t.Fatal("second delete did not report not found")
	}
}

func TestActivityLifecycle(t *testing.T) {
	m := newMemStore()
	ctx := context.Background()
	hours := json.Number("40")
	input := models.ActivityInput{
		Title: " Robotics   club ", Category: "academic", StartDate: "2024-01-10", EndDate: "2024-05-30",
		Hours: &hours, Organization: "Pathways High", Position: "",
	}

	activity, entry, err := CreateActivity(ctx, m, "student-1", input, "user-1", "")
	if err != nil {
		t.Fatalf("CreateActivity: %v", err)
	}
	if activity.Title != "Robotics club" || activity.Hours == nil || *activity.Hours != 40 {
		t.Fatalf("unexpected activity %+v", activity)
	}
	if activity.Position != nil || activity.Organization == nil {
		t.Errorf("optional text not normalised: %+v", activity)
	}
	if entry == nil || entry.Action != ActionActivityCreated {
		t.Errorf("unexpected log %+v", entry)
	}

	input.Hours = nil
	input.Title = "Robotics team"
	updated, _, err := UpdateActivity(ctx, m, "student-1", activity.ID, input, "user-1", "")
	if err != nil {
		t.Fatalf("UpdateActivity: %v", err)
	}
	if updated.Title != "Robotics team" || updated.Hours != nil {
		t.Errorf("unexpected update %+v", updated)
	}
	if stored := m.activities[activity.ID]; stored.Title != "Robotics team" {
		t.Errorf("update not persisted: %+v", stored)
	}

	bad := input
	bad.StartDate = "2024-02-30"
	if _, _, err := UpdateActivity(ctx, m, "student-1", activity.ID, bad, "user-1", ""); serviceStatus(t, err) != http.StatusBadRequest {
		t.Error("invalid start date accepted")
	}
	if _, _, err := UpdateActivity(ctx, m, "student-2", activity.ID, input, "user-2", ""); serviceStatus(t, err) != http.StatusNotFound {
		t.Error("activity reachable through another student")
	}

	if _, err := DeleteActivity(ctx, m, "student-1", activity.ID, "user-1", ""); err != nil {
		t.Fatalf("DeleteActivity: %v", err)
	}
	if _, err := DeleteActivity(ctx, m, "student-1", activity.ID, "user-1", ""); serviceStatus(t, err) != http.StatusNotFound {
		t.Error("second delete did not report not found")
	}

	var actions []string
	for _, l := range m.logs {
		actions = append(actions, l.Action)
	}
	want := []string{ActionActivityCreated, ActionActivityUpdated, ActionActivityDeleted}
	if len(actions) != len(want) {
		t.Fatalf("actions = %v, want %v", actions, want)
	}
	for i := range want {
		if actions[i] != want[i] {
			t.Errorf("action %d = %q, want %q", i, actions[i], want[i])
		}
	}
}
