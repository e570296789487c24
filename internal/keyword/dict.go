// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keyword

// phraseEntry pairs a Korean phrase with its English expansion tokens.
// Entries are matched by substring against the lowercased query, in order,
// so longer or more specific phrases should precede their prefixes.
type phraseEntry struct {
	korean  string
	english []string
}

// phraseDictionary is the curated Korean-to-English expansion table. It
// covers the domains secondary-school projects commonly touch: health and
// fitness, environment, energy, biology, chemistry, physics, and computing.
var phraseDictionary = []phraseEntry{
	// Health and fitness.
	{"체지방 감량", []string{"body", "fat", "loss", "reduction"}},
	{"체지방", []string{"body", "fat"}},
	{"운동", []string{"exercise", "physical", "activity", "fitness"}},
	{"다이어트", []string{"diet", "weight", "loss"}},
	{"비만", []string{"obesity", "weight"}},
	{"수면", []string{"sleep", "health"}},
	{"스트레스", []string{"stress", "mental", "health"}},
	{"면역", []string{"immune", "immunity"}},
	{"영양", []string{"nutrition", "food"}},
	{"심장", []string{"heart", "cardiovascular"}},
	{"뇌", []string{"brain", "neuroscience"}},

	// Environment.
	{"미세 플라스틱", []string{"microplastic", "pollution"}},
	{"미세플라스틱", []string{"microplastic", "pollution"}},
	{"플라스틱", []string{"plastic", "pollution"}},
	{"기후 변화", []string{"climate", "change"}},
	{"기후변화", []string{"climate", "change"}},
	{"지구 온난화", []string{"global", "warming"}},
	{"온난화", []string{"global", "warming"}},
	{"미세먼지", []string{"fine", "dust", "air", "pollution"}},
	{"대기 오염", []string{"air", "pollution"}},
	{"수질 오염", []string{"water", "pollution"}},
	{"오염", []string{"pollution", "environment"}},
	{"재활용", []string{"recycling", "waste"}},
	{"생분해", []string{"biodegradable", "degradation"}},

	// Energy.
	{"태양광", []string{"solar", "panel", "energy"}},
	{"태양 전지", []string{"solar", "cell"}},
	{"풍력", []string{"wind", "turbine", "energy"}},
	{"수소", []string{"hydrogen", "fuel"}},
	{"배터리", []string{"battery", "energy", "storage"}},
	{"신재생 에너지", []string{"renewable", "energy"}},
	{"에너지", []string{"energy", "efficiency"}},

	// Biology.
	{"박테리아", []string{"bacteria", "microbiology"}},
	{"세균", []string{"bacteria", "antibacterial"}},
	{"곰팡이", []string{"fungus", "mold"}},
	{"식물", []string{"plant", "growth"}},
	{"광합성", []string{"photosynthesis", "plant"}},
	{"유전자", []string{"gene", "genetics", "dna"}},
	{"세포", []string{"cell", "biology"}},
	{"효소", []string{"enzyme", "catalysis"}},
	{"곤충", []string{"insect", "behavior"}},
	{"발효", []string{"fermentation", "microbiology"}},

	// Chemistry.
	{"산성비", []string{"acid", "rain"}},
	{"산화", []string{"oxidation", "chemistry"}},
	{"촉매", []string{"catalyst", "reaction"}},
	{"화학 반응", []string{"chemical", "reaction"}},
	{"비타민", []string{"vitamin", "chemistry"}},
	{"산도", []string{"ph", "acidity"}},

	// Physics.
	{"자기장", []string{"magnetic", "field"}},
	{"전자기", []string{"electromagnetic", "physics"}},
	{"마찰", []string{"friction", "physics"}},
	{"진동", []string{"vibration", "resonance"}},
	{"소리", []string{"sound", "acoustics"}},
	{"빛", []string{"light", "optics"}},
	{"중력", []string{"gravity", "physics"}},

	// Computing.
	{"인공지능", []string{"artificial", "intelligence", "machine", "learning"}},
	{"머신러닝", []string{"machine", "learning"}},
	{"딥러닝", []string{"deep", "learning", "neural", "network"}},
	{"로봇", []string{"robot", "robotics"}},
	{"알고리즘", []string{"algorithm", "computing"}},
	{"앱", []string{"app", "software"}},
	{"데이터", []string{"data", "analysis"}},
	{"코딩", []string{"programming", "software"}},
}
