package catalog

// BodyWash is the guideline set for Bodycare / Body Wash.
var BodyWash = RuleSet{
	BaseStructure: []StructureRow{
		{"Water", "Solvent", "q.s. to 100%"},
		{"Primary Surfactant", "Surfactant", "6–18% a.i."},
		{"Co-surfactant / Amphoteric", "Surfactant", "3–10%"},
		{"Foam Booster / Fatty Amide", "Foam Booster", "0–3%"},
		{"Humectant (Glycerin/PG/Propanediol)", "Humectant", "1–5%"},
		{"Rheology Modifier (Acrylates/Cellulose)", "Rheology", "0.2–1.0%"},
		{"Salt / Electrolyte", "Viscosity", "0–2% (titrate)"},
		{"Preservative", "Preservative", "per supplier"},
		{"Fragrance / Colorant", "Aesthetic", "q.s."},
	},
	SurfactantSystems: []SurfactantSystem{
		{
			Name: "Classic SLES/CAPB",
			Tags: []string{"cost-effective", "medium mildness"},
			Combo: []ComboEntry{
				{"Sodium Laureth Sulfate", "primary", "8–14% a.i."},
				{"Cocamidopropyl Betaine", "amphoteric", "3–7%"},
				{"Cocamide MEA (optional)", "foam/viscosity", "0–2%"},
			},
		},
		{
			Name: "Sulfate-Free APG/Betaine",
			Tags: []string{"mild", "green", "sulfate-free"},
			Combo: []ComboEntry{
				{"Coco-/Decyl Glucoside", "primary", "5–10% a.i."},
				{"Cocamidopropyl Betaine", "amphoteric", "3–6%"},
			},
		},
		{
			Name: "Sarcosinate/Betaine (clear gel)",
			Tags: []string{"mild", "clarity"},
			Combo: []ComboEntry{
				{"Sodium Lauroyl Sarcosinate", "primary", "5–10% a.i."},
				{"Cocamidopropyl Betaine", "amphoteric", "3–6%"},
			},
		},
		{
			Name: "AOS/CAPB (high foam)",
			Tags: []string{"high foam", "cost"},
			Combo: []ComboEntry{
				{"Sodium C14-16 Olefin Sulfonate", "primary", "6–12% a.i."},
				{"Cocamidopropyl Betaine", "amphoteric", "3–6%"},
			},
		},
	},
}

// FacialCleanser is the guideline set for Skincare / Facial Cleanser.
var FacialCleanser = RuleSet{
	BaseStructure: []StructureRow{
		{"Water", "Solvent", "q.s. to 100%"},
		{"Mild Surfactant (Sarcosinate/Sulfoacetate)", "Surfactant", "4–10% a.i."},
		{"Amphoteric (CAPB)", "Surfactant", "2–5%"},
		{"Humectant", "Humectant", "2–5%"},
		{"Rheology Modifier", "Rheology", "0.2–0.8%"},
		{"pH Adjuster", "pH", "as needed"},
		{"Preservative", "Preservative", "per supplier"},
		{"Fragrance (optional)", "Aesthetic", "q.s."},
	},
}

func newDefaultRegistry() *Registry {
	r := &Registry{}
	r.Register(Key{Category: "Bodycare", ProductType: "Body Wash"}, BodyWash)
	r.Register(Key{Category: "Skincare", ProductType: "Facial Cleanser"}, FacialCleanser)
	return r
}
