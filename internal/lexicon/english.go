package lexicon

// englishIndicators is the English indicator table. Patterns are matched
// against lower-cased message text, so they are written in lower case.
var englishIndicators = []rawEntry{
	// 0.5 - mild symptoms
	{`bored|unmotivated|blah`, 0.5},
	{`slightly sad|down day`, 0.5},
	{`unfocused|distracted`, 0.5},
	{`mood swings|irritable`, 0.5},
	{`occasionally tearful|mild sadness`, 0.5},
	{`disinterested|low motivation`, 0.5},
	{`temporarily lonely|missing friends`, 0.5},
	{`minor stress|daily worries`, 0.5},
	{`low appetite|eating changes`, 0.5},
	{`sleep changes|restless nights`, 0.5},

	// 1.0 - noticeable distress
	{`tired|exhausted|fatigue|no energy`, 1.0},
	{`can't sleep|insomnia|nightmares`, 1.0},
	{`anxious|worried|afraid|fear`, 1.0},
	{`low energy|drained|lethargic`, 1.0},
	{`sleep issues|restlessness`, 1.0},
	{`nervous|apprehensive|on edge`, 1.0},
	{`overwhelmed|stressed|burdened`, 1.0},
	{`difficulty concentrating`, 1.0},
	{`headaches|body aches`, 1.0},
	{`social withdrawal`, 1.0},

	// 1.5 - early warning signs
	{`no interest|don't care|apathy`, 1.5},
	{`lack of enjoyment|indifference`, 1.5},
	{`not motivated|can't be bothered`, 1.5},
	{`stopped hobbies|no passion`, 1.5},
	{`disengaged|detached`, 1.5},
	{`nothing matters|mechanical living`, 1.5},
	{`emotional numbness`, 1.5},
	{`can't feel happy|flat affect`, 1.5},
	{`no desires|apathetic`, 1.5},
	{`uninterested|withdrawn`, 1.5},

	// 2.0 - moderate symptoms
	{`hopeless|worthless|useless`, 2.0},
	{`crying|tears`, 2.0},
	{`guilt|failure|mistake|fault`, 2.0},
	{`self-blame|self-critical`, 2.0},
	{`shame|embarrassed|humiliated`, 2.0},
	{`feeling like a burden`, 2.0},
	{`regret|remorse`, 2.0},
	{`no self-worth|self-loathing`, 2.0},
	{`worthlessness|undeserving`, 2.0},
	{`dwelling on past mistakes`, 2.0},

	// 2.5 - developing severity
	{`persistent sadness`, 2.5},
	{`feeling stuck|trapped`, 2.5},
	{`loss of hope|pessimism`, 2.5},
	{`questioning purpose`, 2.5},
	{`chronic fatigue`, 2.5},
	{`emotional pain|heartache`, 2.5},
	{`feeling hollow|empty`, 2.5},
	{`prolonged grief`, 2.5},
	{`neglecting self-care`, 2.5},
	{`avoiding family`, 2.5},

	// 3.0 - severe isolation
	{`alone|lonely|isolated`, 3.0},
	{`social isolation`, 3.0},
	{`feeling unloved|unwanted`, 3.0},
	{`no one understands`, 3.0},
	{`abandoned|rejected`, 3.0},
	{`isolating self`, 3.0},
	{`friendless|no support`, 3.0},
	{`feeling like an outcast`, 3.0},
	{`disconnected|estranged`, 3.0},
	{`self-imposed isolation`, 3.0},

	// 3.5 - crisis development
	{`intense despair`, 3.5},
	{`constant crying spells`, 3.5},
	{`paralyzing insecurity`, 3.5},
	{`feeling trapped`, 3.5},
	{`mental anguish`, 3.5},
	{`can't see a future`, 3.5},
	{`debilitating guilt`, 3.5},
	{`physical pain from sadness`, 3.5},
	{`unbearable loneliness`, 3.5},
	{`neglecting responsibilities`, 3.5},

	// 4.0 - critical state
	{`sad|unhappy|miserable|depressed`, 4.0},
	{`deep sorrow|grief-stricken`, 4.0},
	{`paralyzing depression`, 4.0},
	{`unbearable pain`, 4.0},
	{`emptiness|numbness`, 4.0},
	{`constant despair`, 4.0},
	{`completely hopeless`, 4.0},
	{`major depressive episode`, 4.0},
	{`unable to function`, 4.0},
	{`utter despair`, 4.0},

	// 4.5 - emergency level
	{`suicidal thoughts|self-harm`, 4.5},
	{`planning death`, 4.5},
	{`feeling beyond help`, 4.5},
	{`giving up on recovery`, 4.5},
	{`psychotic depression`, 4.5},
	{`extreme withdrawal`, 4.5},
	{`severe detachment`, 4.5},
	{`mental collapse`, 4.5},
	{`can't get out of bed`, 4.5},
	{`total isolation`, 4.5},

	// 5.0 - immediate intervention needed
	{`suicide|die|end|kill|myself`, 5.0},
	{`ending my life`, 5.0},
	{`no will to live`, 5.0},
	{`want to disappear`, 5.0},
	{`life is pointless`, 5.0},
	{`self-harm urges`, 5.0},
	{`death wishes`, 5.0},
	{`ending it all`, 5.0},
	{`wishing to die`, 5.0},
	{`suicidal plans`, 5.0},
}
