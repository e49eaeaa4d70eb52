// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package scene

// Validate checks a Raw scene and returns a renderer-ready Config plus
// any diagnostics found along the way. It never returns a Go error:
// every problem degrades to a default value (usually zero) and a
// recorded message, matching the checkXxx family in
// original_source/hqz/src/zcheck.cpp. The renderer decides whether to
// proceed with a partially-correct scene or to refuse based on
// Diagnostics.HasError().
func Validate(raw *Raw) (*Config, Diagnostics) {
	var diag Diagnostics
	cfg := &Config{
		Exposure:      raw.Exposure,
		Gamma:         raw.Gamma,
		TimeLimit:     raw.TimeLimit,
		MaxReflection: raw.MaxReflection,
		Parallel:      raw.Parallel,
		Debug:         raw.Debug,
	}

	if cfg.Gamma <= 0 {
		cfg.Gamma = 1.0
	}
	if cfg.MaxReflection <= 0 {
		cfg.MaxReflection = 1000
	}

	if raw.Resolution[0] <= 0 || raw.Resolution[1] <= 0 {
		diag.Addf("'resolution' expected a positive [width, height] tuple")
	} else {
		cfg.Resolution = Resolution{W: raw.Resolution[0], H: raw.Resolution[1]}
	}

	cfg.Viewport = Viewport{
		X: valueOrDefault(raw.Viewport[0]),
		Y: valueOrDefault(raw.Viewport[1]),
		W: valueOrDefault(raw.Viewport[2]),
		H: valueOrDefault(raw.Viewport[3]),
	}

	cfg.Rays = int64(raw.Rays)
	if !checkStopCondition(raw.Rays, raw.TimeLimit) {
		diag.Addf("no stopping conditions set; expected a ray limit and/or time limit")
	}

	if raw.Seed != nil {
		cfg.Seed = *raw.Seed
	} else {
		cfg.Seed = deriveSeed()
	}

	if len(raw.Materials) == 0 {
		diag.Addf("'materials' expected at least one entry")
	}
	for i, m := range raw.Materials {
		if !checkMaterialValue(i, m) {
			diag.Addf("material #%d has an outcome with a negative weight", i)
		}
	}
	cfg.Materials = raw.Materials

	for i, obj := range raw.Objects {
		if !checkMaterialID(obj.MaterialID, len(raw.Materials)) {
			diag.Addf("object #%d has an out-of-range material ID", i)
		}
	}
	cfg.Objects = raw.Objects

	totalPower := 0.0
	for _, l := range raw.Lights {
		if n, ok := l.Power.(Num); ok {
			totalPower += float64(n)
		} else if r, ok := l.Power.(Range); ok {
			totalPower += (r.A + r.B) / 2
		}
	}
	if !checkLightPower(totalPower) {
		diag.Addf("total light power (%v) must be positive", totalPower)
	}
	cfg.TotalPower = totalPower
	cfg.Lights = raw.Lights

	for i, l := range raw.Lights {
		if _, ok := l.Power.(Unknown); ok {
			diag.Addf("light #%d 'power' is an unrecognized value, treated as 0", i)
		}
	}

	return cfg, diag
}

func valueOrDefault(v Value) Value {
	if v == nil {
		return Null{}
	}
	return v
}

func checkStopCondition(rays, timeLimit float64) bool {
	return rays > 0 || timeLimit > 0
}

func checkMaterialID(v Value, numMaterials int) bool {
	n, ok := v.(Num)
	if !ok {
		return false
	}
	id := int(n)
	return id >= 0 && id < numMaterials
}

func checkMaterialValue(index int, m Material) bool {
	for _, outcome := range m {
		if outcome.Weight < 0 {
			return false
		}
	}
	return true
}

func checkLightPower(totalPower float64) bool {
	return totalPower > 0
}
