// Package classifier implements soil compaction risk classification for
// field trafficability decisions.
//
// One assessment takes a Measurement of six field observations and returns
// a RiskResult: an overall risk level, a rationale explaining every rule
// that fired, and a management advisory. Classification is deterministic
// and side-effect free: the same measurement against the same thresholds
// always produces the same result.
//
// # Measurement conventions
//
//	bulk_density           g/cm3   dry bulk density of the topsoil
//	cone_index             kPa     penetrometer resistance (bearing capacity)
//	soil_moisture_deficit  mm      water below field capacity; negative = wetter
//	tire_pressure          kPa     tire inflation pressure
//	wheel_load             kg      load carried per wheel
//	rut_depth              cm      rut depth left by recent traffic
//
// # Risk levels
//
// Levels are ordered low < moderate < high < severe. Each factor rule maps
// its measurement onto at most one level; the overall level is the worst
// any rule reached. An assessment with no triggered rules is low and
// carries an empty rationale.
//
// # Default thresholds
//
// The built-in thresholds describe a medium-textured (loam) soil:
//
//	bulk density   > 1.30 moderate, > 1.43 high, > 1.60 severe
//	cone index     < 700 moderate, < 450 high, < 300 severe (lower is weaker)
//	moisture       deficit < 0 high (soil at or above field capacity)
//	tire pressure  > 200 moderate
//	wheel load     >= 3000 moderate, >= 5000 high
//	rut depth      > 3 moderate, > 10 high, > 20 severe
//
// 1.43 g/cm3 is the critical root-restriction density for loam and 1.60 the
// growth-limiting density; 300 kPa is roughly the cone index floor below
// which wheeled equipment ruts or bogs; 3 t per wheel corresponds to the
// 6 t axle load above which subsoil compaction persists. Sandy and clay
// soils shift these cut-offs; load a profile file for other textures.
package classifier
