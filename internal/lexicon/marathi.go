package lexicon

// marathiIndicators is the Marathi (mr-IN) indicator table.
var marathiIndicators = []rawEntry{
	// 0.5 - mild symptoms
	{`कंटाळा|अप्रेरित|थकलेला`, 0.5},
	{`थोडे दुःखी|उदास दिवस`, 0.5},
	{`लक्ष लागत नाही|विचलित`, 0.5},
	{`मूड स्विंग्स|चिडचिड`, 0.5},
	{`कधीकधी रडणे|हलके दुःख`, 0.5},

	// 1.0 - noticeable distress
	{`थकलेला|थकवा|ऊर्जा नाही`, 1.0},
	{`झोप येत नाही|वाईट स्वप्ne`, 1.0},
	{`काळजी|त्रास|भीती`, 1.0},
	{`एकाग्रता कठीण`, 1.0},
	{`डोकेदुखी|शारीरिक वेदना`, 1.0},

	// 2.0 - moderate symptoms
	{`निराशा|व्यर्थ|बेकार`, 2.0},
	{`रडणे|अश्रू`, 2.0},
	{`अपराध|चूक|दोष`, 2.0},
	{`लाज|लज्जा`, 2.0},
	{`ओझे वाटणे`, 2.0},

	// 3.0 - severe symptoms
	{`एकटा|एकाकी|वेगळा`, 3.0},
	{`कोणीही समजत नाही`, 3.0},
	{`त्यागलेला|नाकारलेला`, 3.0},
	{`सामाजिक एकांत`, 3.0},
	{`मित्र नाहीत|आधार नाही`, 3.0},

	// 4.0 - critical state
	{`खूप दुःखी|अतिशय दुःखी`, 4.0},
	{`खोल दुःख|शोक`, 4.0},
	{`असह्य वेदना`, 4.0},
	{`रिक्तता|शून्यता`, 4.0},
	{`काम करू शकत नाही`, 4.0},

	// 5.0 - emergency level
	{`आत्महत्या|मृत्यू`, 5.0},
	{`जगण्याची इच्छा नाही`, 5.0},
	{`संपवून टाकू|समाप्त`, 5.0},
	{`मरण्याची इच्छा`, 5.0},
	{`जीवन व्यर्थ आहे`, 5.0},
}
