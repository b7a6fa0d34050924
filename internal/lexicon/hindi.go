package lexicon

// hindiIndicators is the Hindi (hi-IN) indicator table. Devanagari has no
// letter case, so lower-casing the input is a no-op here.
var hindiIndicators = []rawEntry{
	// 0.5 - mild symptoms
	{`बोर|अप्रेरित|थका हुआ`, 0.5},
	{`थोड़ा दुखी|उदास दिन`, 0.5},
	{`ध्यान नहीं लग रहा|विचलित`, 0.5},
	{`मूड स्विंग्स|चिड़चिड़ा`, 0.5},
	{`कभी-कभी रोना|हल्का दुख`, 0.5},

	// 1.0 - noticeable distress
	{`थका हुआ|थकान|ऊर्जा नहीं`, 1.0},
	{`नींद नहीं आती|बुरे सपने`, 1.0},
	{`चिंतित|परेशान|डर`, 1.0},
	{`एकाग्रता में कठिनाई`, 1.0},
	{`सिरदर्द|शारीरिक दर्द`, 1.0},

	// 2.0 - moderate symptoms
	{`निराशा|बेकार|व्यर्थ`, 2.0},
	{`रोना|आंसू`, 2.0},
	{`अपराध|गलती|दोष`, 2.0},
	{`शर्म|शर्मिंदगी`, 2.0},
	{`बोझ महसूस करना`, 2.0},

	// 3.0 - severe symptoms
	{`अकेला|एकाकी|अलग-थलग`, 3.0},
	{`कोई नहीं समझता`, 3.0},
	{`त्यागा हुआ|अस्वीकृत`, 3.0},
	{`सामाजिक अलगाव`, 3.0},
	{`दोस्त नहीं|सहारा नहीं`, 3.0},

	// 4.0 - critical state
	{`बहुत दुखी|बेहद दुखी`, 4.0},
	{`गहरा दुख|शोक`, 4.0},
	{`असहनीय दर्द`, 4.0},
	{`खालीपन|सुन्नता`, 4.0},
	{`कार्य नहीं कर पाना`, 4.0},

	// 5.0 - emergency level
	{`आत्महत्या|मौत`, 5.0},
	{`जीने की इच्छा नहीं`, 5.0},
	{`खत्म कर दूं|समाप्त`, 5.0},
	{`मरने की इच्छा`, 5.0},
	{`जीवन बेकार है`, 5.0},
}
