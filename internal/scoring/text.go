// Test-report copy — all human-readable strings for the scoring
// engine. Kept apart from the numeric core so the copy can change
// without touching a score.
package scoring

import "fmt"

const (
	synergyBalanced   = "Well-balanced core components work without bottlenecks"
	synergyMultimedia = "Strong audio-visual pairing makes for an impressive demo machine"
)

func bottleneck(component string) string {
	return fmt.Sprintf("The %s lags far behind the rest of the system", component)
}

func competitorResponse(overall float64) string {
	switch {
	case overall >= 85:
		return "Rivals will scramble to answer this machine."
	case overall >= 70:
		return "Expect competing models at aggressive prices within the year."
	case overall >= 55:
		return "Competitors will largely ignore this release."
	default:
		return "Rivals may use this launch in their own advertising."
	}
}

func marketPosition(overall float64) string {
	switch {
	case overall >= 85:
		return "Class-leading"
	case overall >= 70:
		return "Strong contender"
	case overall >= 55:
		return "Mid-pack"
	case overall >= 40:
		return "Budget shelf"
	default:
		return "Also-ran"
	}
}

// annotate fills the per-category comment strings from the scores.
func annotate(r *TestResult) {
	r.Gaming.Comment = gamingComment(r.Gaming.Score, r.Sub)
	r.Business.Comment = businessComment(r.Business.Score, r.Sub)
	if r.Workstation.Applicable {
		r.Workstation.Comment = workstationComment(r.Workstation.Score)
	} else {
		r.Workstation.Comment = "The professional workstation market does not exist yet."
	}
}

func gamingComment(score float64, sub SubScores) string {
	switch {
	case score >= 80:
		return "A dream machine for the arcade-at-home crowd."
	case score >= 60:
		if sub.Sound < 40 {
			return "Plays the latest titles well, though the sound is thin."
		}
		return "A capable games machine at the right price."
	case score >= 40:
		return "Handles older titles; newer releases will struggle."
	default:
		return "Gamers should look elsewhere."
	}
}

func businessComment(score float64, sub SubScores) string {
	switch {
	case score >= 80:
		return "Serious office hardware that will hold its value."
	case score >= 60:
		if sub.RAM < 40 {
			return "Good for correspondence and ledgers, but memory limits larger spreadsheets."
		}
		return "A sensible choice for the small office."
	case score >= 40:
		return "Adequate for light paperwork only."
	default:
		return "Not a machine to run a business on."
	}
}

func workstationComment(score float64) string {
	switch {
	case score >= 80:
		return "Engineering departments will take this seriously."
	case score >= 60:
		return "Entry-level professional work is within reach."
	default:
		return "Underpowered for professional workloads."
	}
}
