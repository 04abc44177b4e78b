package content

import "langlab/internal/models"

// PlacementCategory is the curriculum category whose attempts drive level assessment
const PlacementCategory = "Placement Test"

type lessonDef struct {
	step  string
	entry models.LessonEntry
}

type categoryDef struct {
	name    string
	lessons []lessonDef
}

// The curriculum is deliberately small and fixed. Categories and steps keep
// their authored order, so selection menus render the same way every time.
var curriculum = []categoryDef{
	{
		name: PlacementCategory,
		lessons: []lessonDef{
			{"Level 1", models.LessonEntry{
				Sentence:    "Hello, how are you?",
				Translation: "नमस्ते, आप कैसे हैं?",
			}},
			{"Level 2", models.LessonEntry{
				Sentence:    "I am looking for a professional career in technology.",
				Translation: "मैं तकनीक में एक पेशेवर करियर की तलाश कर रहा हूं।",
			}},
			{"Level 3", models.LessonEntry{
				Sentence:    "Effective communication is the cornerstone of global business relations.",
				Translation: "प्रभावी संचार वैश्विक व्यापार संबंधों की आधारशिला है।",
			}},
		},
	},
	{
		name: "Hospitality",
		lessons: []lessonDef{
			{"Check-in", models.LessonEntry{
				Sentence:    "Welcome to our hotel, may I see your ID?",
				Translation: "हमारे होटल में आपका स्वागत है, क्या मैं आपकी आईडी देख सकता हूँ?",
			}},
			{"Service", models.LessonEntry{
				Sentence:    "Would you like extra towels in your room?",
				Translation: "क्या आपको अपने कमरे में अतिरिक्त तौलिये चाहिए?",
			}},
		},
	},
	{
		name: "IT Support",
		lessons: []lessonDef{
			{"Troubleshoot", models.LessonEntry{
				Sentence:    "Please check if the ethernet cable is plugged in properly.",
				Translation: "कृपया जाँचें कि क्या ईथरनेट केबल ठीक से प्लग की गई है।",
			}},
		},
	},
	{
		name: "Nursing",
		lessons: []lessonDef{
			{"Vitals", models.LessonEntry{
				Sentence:    "I need to take your blood pressure and check your pulse.",
				Translation: "मुझे आपका रक्तचाप लेना है और आपकी नब्ज जांचनी है।",
			}},
		},
	},
}

// vocabBank holds the vocabulary warmup questions. Every item has exactly
// one correct option and the correct option is always a member of Options.
var vocabBank = []models.VocabItem{
	{
		Word:    "Innovation",
		Options: []string{"सफलता (Success)", "नवाचार (New Ideas)", "चुनौती (Challenge)"},
		Answer:  "नवाचार (New Ideas)",
	},
	{
		Word:    "Persistent",
		Options: []string{"लगातार (Continuous)", "अस्थायी (Temporary)", "धीमा (Slow)"},
		Answer:  "लगातार (Continuous)",
	},
	{
		Word:    "Cornerstone",
		Options: []string{"छत (Roof)", "आधारशिला (Foundation)", "दीवार (Wall)"},
		Answer:  "आधारशिला (Foundation)",
	},
	{
		Word:    "Hospitality",
		Options: []string{"दुश्मनी (Enmity)", "सत्कार (Guest Welcome)", "परिवहन (Transport)"},
		Answer:  "सत्कार (Guest Welcome)",
	},
	{
		Word:    "Efficiency",
		Options: []string{"कार्यकुशलता (Work Ability)", "आलस (Laziness)", "शोर (Noise)"},
		Answer:  "कार्यकुशलता (Work Ability)",
	},
}
