package classifier

// advisoryFor returns the management recommendation for a final risk level.
// The texts are fixed so results stay deterministic.
func advisoryFor(level RiskLevel) string {
	switch level {
	case RiskSevere:
		return "Suspend all non-essential field traffic. Any unavoidable pass should run on low-pressure tires in established lanes only. Inspect the subsoil once conditions dry and consider deep ripping if a compacted layer is confirmed."
	case RiskHigh:
		return "Avoid field traffic until the soil dries to a moisture deficit of +10 mm or more. If traffic cannot wait, reduce tire pressures and wheel loads and keep every pass in fixed traffic lanes."
	case RiskModerate:
		return "Prefer drier operating windows and use lower tire pressures or larger tires to cut contact pressure. Re-check bulk density and cone index after the season's heavy operations."
	default:
		return "Conditions are acceptable for normal field operations. Keep traffic to established lanes where practical and continue routine monitoring of bulk density and cone index."
	}
}
