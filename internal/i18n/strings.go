package i18n

// strings.go holds the closed string tables for both languages.  Keeping the
// tables in one file makes it easy to spot a key present in one language and
// missing in the other.

var tables = map[Language]map[string]string{
	Italian: {
		"app.title":    "MedAgent",
		"app.subtitle": "Assistente sanitario intelligente per la tua salute",

		"entry.start":      "Inizia la valutazione",
		"entry.disclaimer": "⚠️ Questo strumento non sostituisce il parere medico professionale. In caso di emergenza, contatta immediatamente il 118.",

		"consent.prompt":  "Per continuare devi accettare i termini di servizio, l'informativa privacy e il trattamento dei dati (GDPR).",
		"consent.terms":   "Accetto i termini di servizio",
		"consent.privacy": "Accetto l'informativa privacy",
		"consent.gdpr":    "Acconsento al trattamento dei dati secondo il GDPR",
		"consent.missing": "Devi accettare tutte e tre le condizioni per continuare.",

		"intake.title":               "Valutazione iniziale",
		"intake.age":                 "Età",
		"intake.gender":              "Genere",
		"intake.main_symptom":        "Sintomo principale",
		"intake.duration":            "Durata",
		"intake.intensity":           "Intensità",
		"intake.associated_symptoms": "Sintomi associati",
		"intake.known_conditions":    "Condizioni mediche note",
		"intake.family_history":      "Anamnesi familiare",
		"intake.start_consultation":  "Inizia consultazione",
		"intake.invalid_symptom":     "Inserisci un sintomo valido",

		"enum.gender.male":              "Maschio",
		"enum.gender.female":            "Femmina",
		"enum.gender.other":             "Altro",
		"enum.gender.unspecified":       "Preferisco non dirlo",
		"enum.duration.one_day":         "Da un giorno",
		"enum.duration.two_three_days":  "Da 2-3 giorni",
		"enum.duration.over_three_days": "Da più di 3 giorni",
		"enum.duration.chronic":         "Cronico (da settimane o mesi)",

		"chat.title":          "Consultazione MedAgent",
		"chat.placeholder":    "Scrivi il tuo messaggio...",
		"chat.thinking":       "MedAgent sta pensando...",
		"chat.error_fallback": "Mi dispiace, si è verificato un errore. Riprova tra poco.",
		"chat.urgency":        "Livello urgenza",
		"chat.see_results":    "Vedi risultati",

		"summary.title":           "Risultati",
		"summary.lay":             "Per te",
		"summary.technical":       "Tecnico",
		"summary.urgency":         "Livello di urgenza",
		"summary.recommendations": "Raccomandazioni",
		"summary.session":         "Riassunto sessione",
		"summary.duration":        "Durata consultazione",
		"summary.messages":        "Messaggi scambiati",
		"summary.session_data":    "Dati della sessione",
		"summary.stats":           "Statistiche conversazione",
		"summary.profile":         "Profilo paziente",
		"summary.user_messages":   "Messaggi utente",
		"summary.assistant_msgs":  "Risposte assistente",
		"summary.max_urgency":     "Livello urgenza massimo",
		"summary.new_evaluation":  "Nuova valutazione",
		"summary.not_specified":   "Non specificato",

		"option.fever":                "Febbre",
		"option.headache":             "Mal di testa",
		"option.nausea":               "Nausea",
		"option.vomiting":             "Vomito",
		"option.dizziness":            "Vertigini",
		"option.weakness":             "Debolezza",
		"option.abdominal_pain":       "Dolore addominale",
		"option.breathing_difficulty": "Difficoltà respiratorie",
		"option.cough":                "Tosse",
		"option.sore_throat":          "Mal di gola",
		"option.diarrhea":             "Diarrea",
		"option.constipation":         "Stitichezza",
		"option.muscle_pain":          "Dolore muscolare",
		"option.joint_pain":           "Dolore articolare",
		"option.appetite_loss":        "Perdita appetito",
		"option.insomnia":             "Insonnia",
		"option.anxiety":              "Ansia",
		"option.palpitations":         "Palpitazioni",
		"option.sweating":             "Sudorazione",

		"option.diabetes":         "Diabete",
		"option.hypertension":     "Ipertensione",
		"option.asthma":           "Asma",
		"option.allergies":        "Allergie",
		"option.hypothyroidism":   "Ipotiroidismo",
		"option.hyperthyroidism":  "Ipertiroidismo",
		"option.heart_disease":    "Malattie cardiache",
		"option.depression":       "Depressione",
		"option.anxiety_disorder": "Ansia",
		"option.arthritis":        "Artrite",
		"option.osteoporosis":     "Osteoporosi",
		"option.none_known":       "Nessuna condizione nota",
	},
	English: {
		"app.title":    "MedAgent",
		"app.subtitle": "Intelligent health assistant for your wellbeing",

		"entry.start":      "Start evaluation",
		"entry.disclaimer": "⚠️ This tool does not replace professional medical advice. In case of emergency, immediately contact 118.",

		"consent.prompt":  "To continue you must accept the terms of service, the privacy policy and GDPR data processing.",
		"consent.terms":   "I accept the terms of service",
		"consent.privacy": "I accept the privacy policy",
		"consent.gdpr":    "I consent to data processing under the GDPR",
		"consent.missing": "You must accept all three conditions to continue.",

		"intake.title":               "Initial evaluation",
		"intake.age":                 "Age",
		"intake.gender":              "Gender",
		"intake.main_symptom":        "Main symptom",
		"intake.duration":            "Duration",
		"intake.intensity":           "Intensity",
		"intake.associated_symptoms": "Associated symptoms",
		"intake.known_conditions":    "Known medical conditions",
		"intake.family_history":      "Family history",
		"intake.start_consultation":  "Start consultation",
		"intake.invalid_symptom":     "Enter a valid symptom",

		"enum.gender.male":              "Male",
		"enum.gender.female":            "Female",
		"enum.gender.other":             "Other",
		"enum.gender.unspecified":       "Prefer not to say",
		"enum.duration.one_day":         "Since one day",
		"enum.duration.two_three_days":  "For 2-3 days",
		"enum.duration.over_three_days": "For more than 3 days",
		"enum.duration.chronic":         "Chronic (weeks or months)",

		"chat.title":          "MedAgent consultation",
		"chat.placeholder":    "Type your message...",
		"chat.thinking":       "MedAgent is thinking...",
		"chat.error_fallback": "Sorry, something went wrong. Please try again shortly.",
		"chat.urgency":        "Urgency level",
		"chat.see_results":    "See results",

		"summary.title":           "Results",
		"summary.lay":             "For you",
		"summary.technical":       "Technical",
		"summary.urgency":         "Urgency level",
		"summary.recommendations": "Recommendations",
		"summary.session":         "Session summary",
		"summary.duration":        "Consultation duration",
		"summary.messages":        "Messages exchanged",
		"summary.session_data":    "Session data",
		"summary.stats":           "Conversation statistics",
		"summary.profile":         "Patient profile",
		"summary.user_messages":   "User messages",
		"summary.assistant_msgs":  "Assistant replies",
		"summary.max_urgency":     "Maximum urgency level",
		"summary.new_evaluation":  "New evaluation",
		"summary.not_specified":   "Not specified",

		"option.fever":                "Fever",
		"option.headache":             "Headache",
		"option.nausea":               "Nausea",
		"option.vomiting":             "Vomiting",
		"option.dizziness":            "Dizziness",
		"option.weakness":             "Weakness",
		"option.abdominal_pain":       "Abdominal pain",
		"option.breathing_difficulty": "Breathing difficulty",
		"option.cough":                "Cough",
		"option.sore_throat":          "Sore throat",
		"option.diarrhea":             "Diarrhea",
		"option.constipation":         "Constipation",
		"option.muscle_pain":          "Muscle pain",
		"option.joint_pain":           "Joint pain",
		"option.appetite_loss":        "Loss of appetite",
		"option.insomnia":             "Insomnia",
		"option.anxiety":              "Anxiety",
		"option.palpitations":         "Palpitations",
		"option.sweating":             "Sweating",

		"option.diabetes":         "Diabetes",
		"option.hypertension":     "Hypertension",
		"option.asthma":           "Asthma",
		"option.allergies":        "Allergies",
		"option.hypothyroidism":   "Hypothyroidism",
		"option.hyperthyroidism":  "Hyperthyroidism",
		"option.heart_disease":    "Heart disease",
		"option.depression":       "Depression",
		"option.anxiety_disorder": "Anxiety disorder",
		"option.arthritis":        "Arthritis",
		"option.osteoporosis":     "Osteoporosis",
		"option.none_known":       "No known conditions",
	},
}
