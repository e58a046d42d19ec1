package sim

import (
	"math/rand"
	"reflect"
	"testing"
)

func makeDepartments(n int) []*Department {
	rng := rand.New(rand.NewSource(11))
	return NewDepartmentRoster(rng, n, 15)
}

func makeFacultyAged(departments []*Department, age int) []*Faculty {
	var roster []*Faculty
	id := 1
	for _, d := range departments {
		for i := 0; i < d.Size; i++ {
			roster = append(roster, &Faculty{
				ID:             id,
				DepartmentID:   d.ID,
				Rank:           RankFull,
				TenureStatus:   Tenured,
				Age:            age,
				RetirementRisk: retirementRisk(age),
				MobilityRisk:   rankMobilityRisk[RankFull],
				Status:         FacultyStaying,
			})
			id++
		}
	}
	return roster
}

func TestGenerateOpenings_EveryDepartmentPresentOnce(t *testing.T) {
	departments := makeDepartments(25)
	faculty := makeFacultyAged(departments, 40)
	rng := rand.New(rand.NewSource(1))

	openings := GenerateOpenings(rng, faculty, departments, 2001, false, nil)

	if len(openings) != len(departments) {
		t.Fatalf("openings table has %d entries, want %d", len(openings), len(departments))
	}
	for _, d := range departments {
		count, ok := openings[d.ID]
		if !ok {
			t.Fatalf("department %d missing from openings table", d.ID)
		}
		if count < 0 {
			t.Fatalf("department %d has negative openings %d", d.ID, count)
		}
	}
}

func TestGenerateOpenings_CertainRetirementMarksEveryone(t *testing.T) {
	departments := makeDepartments(3)
	// Age 80: risk = (80-55)*0.05 = 1.25, probability clamps to 1.
	faculty := makeFacultyAged(departments, 80)
	rng := rand.New(rand.NewSource(2))

	openings := GenerateOpenings(rng, faculty, departments, 2001, false, nil)

	perDept := make(map[int]int)
	for _, f := range faculty {
		if f.Status != FacultyRetiring {
			t.Fatalf("faculty %d status = %q, want retiring", f.ID, f.Status)
		}
		perDept[f.DepartmentID]++
	}
	// Natural openings at least equal attrition; Poisson terms only add.
	for _, d := range departments {
		if openings[d.ID] < perDept[d.ID] {
			t.Errorf("department %d openings %d below attrition count %d", d.ID, openings[d.ID], perDept[d.ID])
		}
	}
}

func TestGenerateOpenings_RecessionDelaysRetirement(t *testing.T) {
	departments := makeDepartments(10)

	countRetiring := func(inRecession bool, factor float64) int {
		faculty := makeFacultyAged(departments, 62) // risk = 0.35
		rng := rand.New(rand.NewSource(3))
		GenerateOpenings(rng, faculty, departments, 2009, inRecession, &RecessionEffects{RetirementDelayFactor: factor})
		n := 0
		for _, f := range faculty {
			if f.Status == FacultyRetiring {
				n++
			}
		}
		return n
	}

	normal := countRetiring(false, 0.05)
	// Factor 0.05 pushes the effective probability to the 0.01 floor.
	delayed := countRetiring(true, 0.05)

	if delayed >= normal {
		t.Errorf("recession with strong delay factor retired %d, normal year %d; expected fewer", delayed, normal)
	}
}

func TestGenerateOpenings_FloorKeepsRetirementPossible(t *testing.T) {
	departments := makeDepartments(2)
	faculty := makeFacultyAged(departments, 30) // risk floor 0.02
	rng := rand.New(rand.NewSource(4))

	GenerateOpenings(rng, faculty, departments, 2009, true, &RecessionEffects{RetirementDelayFactor: 0})
	// With factor 0 the raw probability is 0; the 0.01 floor still applies.
	// Just assert statuses are valid; the floor behavior is structural.
	for _, f := range faculty {
		switch f.Status {
		case FacultyStaying, FacultyRetiring, FacultyMoving:
		default:
			t.Fatalf("faculty %d has invalid status %q", f.ID, f.Status)
		}
	}
}

func TestGenerateOpenings_Deterministic(t *testing.T) {
	departments := makeDepartments(15)

	run := func() map[int]int {
		faculty := makeFacultyAged(departments, 50)
		rng := rand.New(rand.NewSource(77))
		return GenerateOpenings(rng, faculty, departments, 2005, false, nil)
	}

	if !reflect.DeepEqual(run(), run()) {
		t.Error("same-seed opening generation produced different tables")
	}
}

func TestGenerateOpenings_NoDepartments(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	openings := GenerateOpenings(rng, nil, nil, 2001, false, nil)
	if len(openings) != 0 {
		t.Errorf("expected empty openings table, got %d entries", len(openings))
	}
}
