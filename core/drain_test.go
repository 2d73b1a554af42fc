package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rotnitxe/kpknfit/schema"
)

var (
	benchPress = &schema.ExerciseFatigueProfile{ID: "bench", Name: "Bench Press", EFC: 3.8, CNC: 3.8, SSC: 0.3, PrimaryMuscle: "Chest"}
	squat      = &schema.ExerciseFatigueProfile{ID: "squat", Name: "Back Squat", EFC: 4.5, CNC: 4.5, SSC: 1.5, PrimaryMuscle: "Quads"}
	baseTanks  = schema.BatteryTanks{CNS: BaselineCNSTank, Muscular: BaselineMuscularTank, Spinal: BaselineSpinalTank}
)

func intPtr(v int) *int { return &v }

func TestEffectiveRPE(t *testing.T) {
	tests := []struct {
		name string
		set  schema.ExerciseSet
		want float64
	}{
		{"nothing recorded", schema.ExerciseSet{Reps: 8}, 7},
		{"target rpe", schema.ExerciseSet{TargetRPE: 8}, 8},
		{"completed beats target", schema.ExerciseSet{TargetRPE: 8, CompletedRPE: 9}, 9},
		{"rpe beats rir", schema.ExerciseSet{TargetRPE: 7, TargetRIR: intPtr(0)}, 7},
		{"target rir", schema.ExerciseSet{TargetRIR: intPtr(2)}, 8},
		{"completed rir beats target rir", schema.ExerciseSet{TargetRIR: intPtr(3), CompletedRIR: intPtr(1)}, 9},
		{"clamped high", schema.ExerciseSet{CompletedRPE: 14}, 10},
		{"clamped low", schema.ExerciseSet{TargetRIR: intPtr(12)}, 1},
		{"failure", schema.ExerciseSet{TargetRPE: 8, ToFailure: true}, 11},
		{"amrap", schema.ExerciseSet{AMRAP: true}, 11},
		{"failed attempt", schema.ExerciseSet{PerformanceMode: schema.PerformanceFailed}, 11},
		{"drop set floors at 10", schema.ExerciseSet{TargetRPE: 7, DropSets: 1}, 10},
		{"techniques stack", schema.ExerciseSet{TargetRPE: 9, DropSets: 1, RestPauses: 1}, 11.5},
		{"partials", schema.ExerciseSet{ToFailure: true, Partials: 3}, 11.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EffectiveRPE(tt.set), 1e-9)
		})
	}
}

func TestEffortPredicates(t *testing.T) {
	assert.InDelta(t, 0.6, EffortMultiplier(schema.ExerciseSet{TargetRPE: 7}), 1e-9)
	assert.InDelta(t, 1.0, EffortMultiplier(schema.ExerciseSet{TargetRPE: 8}), 1e-9)
	assert.InDelta(t, 1.2, EffortMultiplier(schema.ExerciseSet{TargetRPE: 10}), 1e-9)
	assert.InDelta(t, 1.2, EffortMultiplier(schema.ExerciseSet{AMRAP: true}), 1e-9)

	assert.True(t, IsSetEffective(schema.ExerciseSet{TargetRPE: 6}))
	assert.False(t, IsSetEffective(schema.ExerciseSet{TargetRPE: 5}))

	assert.True(t, IsFailureSet(schema.ExerciseSet{CompletedRPE: 10}))
	assert.True(t, IsFailureSet(schema.ExerciseSet{PerformanceMode: schema.PerformanceFailed}))
	assert.False(t, IsFailureSet(schema.ExerciseSet{CompletedRPE: 9.5}))

	assert.InDelta(t, 10.0, EffectiveReps(schema.ExerciseSet{Reps: 8, Partials: 4}), 1e-9)
	assert.InDelta(t, 20.0, EffectiveReps(schema.ExerciseSet{Reps: 8, DropSetReps: 6, RestPauseReps: 6}), 1e-9)
	assert.InDelta(t, 0.0, EffectiveReps(schema.ExerciseSet{Reps: -3}), 1e-9)
}

func TestOpenEndedSetsWithoutReps(t *testing.T) {
	tests := []struct {
		name string
		set  schema.ExerciseSet
		reps float64
	}{
		{"amrap", schema.ExerciseSet{AMRAP: true}, neutralOpenReps},
		{"to failure", schema.ExerciseSet{ToFailure: true}, neutralOpenReps},
		{"amrap with partials", schema.ExerciseSet{AMRAP: true, Partials: 2}, neutralOpenReps + 1},
		{"logged reps win", schema.ExerciseSet{AMRAP: true, Reps: 12}, 12},
		{"plain set stays empty", schema.ExerciseSet{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.reps, EffectiveReps(tt.set), 1e-9)
			d := DrainForSet(tt.set, benchPress, baseTanks, 0, 90)
			if tt.reps > 0 {
				assert.Positive(t, d.MuscularDrainPct)
				assert.Positive(t, d.CNSDrainPct)
				assert.Positive(t, SetStress(tt.set, benchPress, 90))
			} else {
				assert.Equal(t, schema.SetDrainResult{}, d)
			}
		})
	}
}

func TestDrainForSetEdges(t *testing.T) {
	set := schema.ExerciseSet{Reps: 8, TargetRPE: 8}
	assert.Equal(t, schema.SetDrainResult{}, DrainForSet(set, nil, baseTanks, 0, 90))
	assert.Equal(t, schema.SetDrainResult{}, DrainForSet(schema.ExerciseSet{}, benchPress, baseTanks, 0, 90))

	d := DrainForSet(set, benchPress, baseTanks, 0, 90)
	assert.Greater(t, d.CNSDrainPct, 0.0)
	assert.Greater(t, d.MuscularDrainPct, 0.0)
	assert.Greater(t, d.SpinalDrainPct, 0.0)

	// zero rest uses the default
	assert.Equal(t, d, DrainForSet(set, benchPress, baseTanks, 0, 0))
	// deterministic
	assert.Equal(t, d, DrainForSet(set, benchPress, baseTanks, 0, 90))

	half := baseTanks
	half.Muscular /= 2
	assert.InDelta(t, 2*d.MuscularDrainPct, DrainForSet(set, benchPress, half, 0, 90).MuscularDrainPct, 1e-9)

	// a tank of zero does not divide by zero
	zero := DrainForSet(set, benchPress, schema.BatteryTanks{}, 0, 90)
	assert.False(t, math.IsInf(zero.CNSDrainPct, 0))
}

func TestDrainFailureIsCostlier(t *testing.T) {
	hard := schema.ExerciseSet{Reps: 8, TargetRPE: 9}
	failed := schema.ExerciseSet{Reps: 8, TargetRPE: 9, ToFailure: true}

	h := DrainForSet(hard, squat, baseTanks, 0, 120)
	f := DrainForSet(failed, squat, baseTanks, 0, 120)
	assert.Greater(t, f.CNSDrainPct, h.CNSDrainPct)
	assert.Greater(t, f.MuscularDrainPct, h.MuscularDrainPct)
	assert.Greater(t, f.SpinalDrainPct, h.SpinalDrainPct)
}

func TestDrainDiminishingReturns(t *testing.T) {
	set := schema.ExerciseSet{Reps: 10, TargetRPE: 8}
	prev := DrainForSet(set, benchPress, baseTanks, 0, 90)
	for n := 1; n <= 30; n++ {
		d := DrainForSet(set, benchPress, baseTanks, n, 90)
		assert.GreaterOrEqual(t, d.MuscularDrainPct, prev.MuscularDrainPct, "sets %d", n)
		assert.GreaterOrEqual(t, d.CNSDrainPct, prev.CNSDrainPct, "sets %d", n)
		prev = d
	}

	prevMult := AccumulationMultiplier(0)
	assert.InDelta(t, 1.0, prevMult, 1e-9)
	for n := 1; n <= 100; n++ {
		m := AccumulationMultiplier(n)
		assert.GreaterOrEqual(t, m, prevMult)
		assert.LessOrEqual(t, m, 1.6)
		prevMult = m
	}
	assert.InDelta(t, 1.0, AccumulationMultiplier(-5), 1e-9)
}

func TestDrainRestSensitivity(t *testing.T) {
	set := schema.ExerciseSet{Reps: 10, TargetRPE: 8}
	short := DrainForSet(set, benchPress, baseTanks, 0, 30)
	normal := DrainForSet(set, benchPress, baseTanks, 0, 90)
	long := DrainForSet(set, benchPress, baseTanks, 0, 240)
	assert.Greater(t, short.MuscularDrainPct, normal.MuscularDrainPct)
	assert.Greater(t, normal.MuscularDrainPct, long.MuscularDrainPct)

	prev := RestFactor(1)
	for rest := 5; rest <= 900; rest += 5 {
		f := RestFactor(rest)
		assert.LessOrEqual(t, f, prev, "rest %d", rest)
		assert.GreaterOrEqual(t, f, 0.8)
		prev = f
	}
	assert.InDelta(t, RestFactor(DefaultRestSeconds), RestFactor(0), 1e-9)
}

func TestDrainNeuralAndAxialLoad(t *testing.T) {
	light := schema.ExerciseSet{Reps: 5, TargetRPE: 8, WeightKg: 60, OneRepMaxKg: 100}
	heavy := schema.ExerciseSet{Reps: 5, TargetRPE: 8, WeightKg: 90, OneRepMaxKg: 100}
	l := DrainForSet(light, squat, baseTanks, 0, 180)
	h := DrainForSet(heavy, squat, baseTanks, 0, 180)
	assert.InDelta(t, 1.6, h.CNSDrainPct/l.CNSDrainPct, 1e-9)
	assert.InDelta(t, 1.9/1.6, h.SpinalDrainPct/l.SpinalDrainPct, 1e-9)
	assert.InDelta(t, l.MuscularDrainPct, h.MuscularDrainPct, 1e-9)
}

func TestSetStress(t *testing.T) {
	set := schema.ExerciseSet{Reps: 8, TargetRPE: 8}
	assert.InDelta(t, 0.0, SetStress(set, nil, 90), 1e-9)
	s := SetStress(set, benchPress, 90)
	assert.InDelta(t, math.Pow(8, 0.65)*0.8*3.8, s, 1e-9)
}

func FuzzDrainForSet(f *testing.F) {
	f.Add(8, 8.0, 100.0, 0, 90, false)
	f.Add(1, 10.0, 0.0, 12, 30, true)
	f.Add(20, 6.0, 250.0, 3, 300, false)
	f.Add(0, 0.0, -5.0, -1, -1, true)

	f.Fuzz(func(t *testing.T, reps int, rpe, weight float64, accumulated, rest int, failure bool) {
		if math.IsNaN(rpe) || math.IsInf(rpe, 0) || math.IsNaN(weight) || math.IsInf(weight, 0) {
			t.Skip()
		}
		if reps > 1000 || weight > 1000 {
			t.Skip()
		}
		set := schema.ExerciseSet{Reps: reps, TargetRPE: rpe, WeightKg: weight, ToFailure: failure}
		d := DrainForSet(set, squat, baseTanks, accumulated, rest)
		for _, v := range []float64{d.CNSDrainPct, d.MuscularDrainPct, d.SpinalDrainPct} {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("drain out of range: %+v for %+v", d, set)
			}
		}
	})
}

func BenchmarkDrainForSet(b *testing.B) {
	set := schema.ExerciseSet{Reps: 6, TargetRPE: 9, WeightKg: 140, OneRepMaxKg: 170}
	for b.Loop() {
		DrainForSet(set, squat, baseTanks, 4, 180)
	}
}
