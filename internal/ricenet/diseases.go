package ricenet

// DiseaseInfo is the agronomic reference entry for one disease class.
type DiseaseInfo struct {
	Symptoms   []string `json:"symptoms"`
	Treatment  []string `json:"treatment"`
	Prevention []string `json:"prevention"`
}

// diseaseInfo keys every entry by the normalized, title-cased class label.
var diseaseInfo = map[string]DiseaseInfo{
	"Blight": {
		Symptoms: []string{
			"Yellow-orange stripes on leaf blades",
			"Leaves wilt and roll up",
			"Creamy bacterial ooze",
			"V-shaped lesions from leaf tips",
		},
		Treatment: []string{
			"Apply copper-based bactericides",
			"Remove infected leaves",
			"Avoid excessive nitrogen fertilizer",
		},
		Prevention: []string{
			"Use certified disease-free seeds",
			"Ensure proper drainage",
			"Practice crop rotation",
		},
	},

	"Brown Spot": {
		Symptoms: []string{
			"Brown circular spots",
			"Yellow halo around lesions",
			"Reduced grain quality",
		},
		Treatment: []string{
			"Apply Mancozeb or Carbendazim",
			"Improve soil nutrition",
		},
		Prevention: []string{
			"Balanced fertilization",
			"Seed treatment before planting",
		},
	},

	"False Smut": {
		Symptoms: []string{
			"Green to yellow smut balls on panicles",
			"Powdery spores inside balls",
		},
		Treatment: []string{
			"Remove infected panicles",
			"Apply Propiconazole fungicide",
		},
		Prevention: []string{
			"Avoid excess nitrogen",
			"Use resistant varieties",
		},
	},

	"Healthy": {
		Symptoms:  []string{},
		Treatment: []string{},
		Prevention: []string{
			"Maintain proper irrigation",
			"Balanced fertilizer use",
			"Regular field monitoring",
		},
	},

	"Leaf Smut": {
		Symptoms: []string{
			"Black streaks on leaves",
			"Reduced photosynthesis",
		},
		Treatment: []string{
			"Apply suitable fungicide",
			"Remove infected plants",
		},
		Prevention: []string{
			"Use disease-free seeds",
			"Crop rotation",
		},
	},

	"Rice Blast": {
		Symptoms: []string{
			"Diamond-shaped lesions",
			"Gray centers with brown margins",
		},
		Treatment: []string{
			"Spray Tricyclazole",
			"Maintain proper water levels",
		},
		Prevention: []string{
			"Use blast-resistant varieties",
			"Avoid excess nitrogen",
		},
	},

	"Stem Rot": {
		Symptoms: []string{
			"Rotting of stem base",
			"Wilting of plants",
		},
		Treatment: []string{
			"Improve drainage",
			"Apply recommended fungicide",
		},
		Prevention: []string{
			"Avoid waterlogging",
			"Balanced fertilization",
		},
	},

	"Tungro": {
		Symptoms: []string{
			"Yellow-orange discoloration",
			"Stunted growth",
		},
		Treatment: []string{
			"Remove infected plants",
			"Control leafhopper vectors",
		},
		Prevention: []string{
			"Vector control",
			"Use resistant varieties",
		},
	},
}

// InfoFor returns the reference entry for a disease label, or generic
// consult-an-expert advice for classes the reference data does not cover.
func InfoFor(disease string) DiseaseInfo {
	if info, ok := diseaseInfo[disease]; ok {
		return info
	}
	return DiseaseInfo{
		Symptoms:   []string{"Information not available"},
		Treatment:  []string{"Consult agriculture expert"},
		Prevention: []string{"General crop care recommended"},
	}
}

// Diseases lists every label present in the reference data.
func Diseases() []string {
	names := make([]string, 0, len(diseaseInfo))
	for name := range diseaseInfo {
		names = append(names, name)
	}
	return names
}
