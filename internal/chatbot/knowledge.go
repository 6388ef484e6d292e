package chatbot

// severityKeyOrder defines the fallback preference when a "High" variant is
// absent for a disease and intent.
var severityKeyOrder = []string{"High", "Moderate", "Low", "General"}

// knowledgeBase maps display name -> intent key -> severity key -> answers.
var knowledgeBase = map[string]map[string]map[string][]string{
	"Blight": {
		"symptoms": {
			"High": {"Yellow-orange stripes on leaf blades", "Leaves wilt and roll up", "Creamy bacterial ooze", "V-shaped lesions from leaf tips"},
		},
		"treatment": {
			"High": {"Apply copper-based bactericides", "Remove infected leaves", "Avoid excessive nitrogen fertilizer"},
		},
		"prevention": {
			"General": {"Use certified disease-free seeds", "Ensure proper drainage", "Practice crop rotation"},
		},
		"severity": {
			"High": {"Bacterial blight can destroy entire fields during wet seasons", "Act within days of the first lesions appearing"},
		},
	},
	"Brown Spot": {
		"symptoms": {
			"High": {"Brown circular spots", "Yellow halo around lesions", "Reduced grain quality"},
		},
		"treatment": {
			"High": {"Apply Mancozeb or Carbendazim", "Improve soil nutrition"},
			"Low":  {"Improve soil nutrition", "Monitor the field weekly"},
		},
		"prevention": {
			"General": {"Balanced fertilization", "Seed treatment before planting"},
		},
		"severity": {
			"General": {"Brown spot is usually moderate but worsens in nutrient-poor soil", "Heavy infestation lowers grain quality"},
		},
	},
	"False Smut": {
		"symptoms": {
			"High": {"Green to yellow smut balls on panicles", "Powdery spores inside balls"},
		},
		"treatment": {
			"High": {"Remove infected panicles", "Apply Propiconazole fungicide"},
		},
		"prevention": {
			"General": {"Avoid excess nitrogen", "Use resistant varieties"},
		},
		"severity": {
			"General": {"False smut mainly affects grain quality rather than plant survival"},
		},
	},
	"Healthy": {
		"prevention": {
			"General": {"Maintain proper irrigation", "Balanced fertilizer use", "Regular field monitoring"},
		},
		"severity": {
			"General": {"A healthy crop needs no intervention, keep monitoring regularly"},
		},
	},
	"Leaf Smut": {
		"symptoms": {
			"High": {"Black streaks on leaves", "Reduced photosynthesis"},
		},
		"treatment": {
			"High": {"Apply suitable fungicide", "Remove infected plants"},
		},
		"prevention": {
			"General": {"Use disease-free seeds", "Crop rotation"},
		},
		"severity": {
			"General": {"Leaf smut is rarely fatal but weakens the plant over time"},
		},
	},
	"Rice Blast": {
		"symptoms": {
			"High": {"Diamond-shaped lesions", "Gray centers with brown margins"},
		},
		"treatment": {
			"High": {"Spray Tricyclazole", "Maintain proper water levels"},
			"Low":  {"Maintain proper water levels", "Reapply fungicide after rain"},
		},
		"prevention": {
			"General": {"Use blast-resistant varieties", "Avoid excess nitrogen"},
		},
		"severity": {
			"High": {"Rice blast is among the most destructive rice diseases", "Neck blast can cause total panicle loss"},
		},
	},
	"Stem Rot": {
		"symptoms": {
			"High": {"Rotting of stem base", "Wilting of plants"},
		},
		"treatment": {
			"High": {"Improve drainage", "Apply recommended fungicide"},
		},
		"prevention": {
			"General": {"Avoid waterlogging", "Balanced fertilization"},
		},
		"severity": {
			"General": {"Stem rot causes lodging and yield loss late in the season"},
		},
	},
	"Tungro": {
		"symptoms": {
			"High": {"Yellow-orange discoloration", "Stunted growth"},
		},
		"treatment": {
			"High": {"Remove infected plants", "Control leafhopper vectors"},
		},
		"prevention": {
			"General": {"Vector control", "Use resistant varieties"},
		},
		"severity": {
			"High": {"Tungro spreads rapidly through leafhoppers and can halve yields"},
		},
	},
}
