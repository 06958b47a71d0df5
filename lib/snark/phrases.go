// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snark

// The built-in tables. Emoji shortcodes render on the chat platform;
// in terminals they pass through as text.

var positivePhrases = []string{
	"Groovy.",
	"Radical.",
	"Bodacious.",
	"Tubular.",
	"Freakin' sweet.",
	"Cool.",
	"Stupendous.",
	"Copacetic.",
	"Amazing.",
	"Outstanding.",
	"Jolly good.",
	"Nifty.",
	"Hot damn.",
	"Tremendous.",
	"Excellent.",
	"Most impressive.",
	"Impressive.",
	"Glorious.",
	"Sublime.",
	"Superlative job.",
	"Wooooo.",
	"Aces.",
	"Fab.",
	"Fantastic.",
	"Fan-frickin'-tastic.",
	"Out of sight.",
	"Out of this world.",
	"Get you some.",
	"Setting an example.",
	"Can I get an amen?",
	"That's the bee's knees.",
	"Boo-yah.",
	"Yay.",
	"Yippie-ki-yay.",
	"Aye.",
	"Aye aye.",
	"As you wish.",
	"Metal.",
	"Heavy Metal.",
	":metal:.",
	":+1:.",
	":beers:.",
	"Rock and roll.",
	"Money.",
	"Kobe!",
	":100:.",
	":1up:.",
	":drake-yes:.",
	"Ayyyyy.",
	"This pleases the :lizard:.",
}

var negativePhrases = []string{
	"Brutal.",
	"Get Wrecked.",
	"Too bad.",
	"Unfortunate.",
	"Most unfortunate.",
	"Bummer.",
	"What a shame.",
	"Womp womp.",
	"Tsk tsk.",
	"Mic drop.",
	"Shouldn't have done that.",
	"Awwww.",
	"Sic semper tyranis.",
	"Bollocks.",
	"Golly.",
	"Goodness.",
	"Hardy har har.",
	"Drat.",
	"Dang.",
	"You are not going to space today.",
	"Oi! Bugger!",
	"Ouch.",
	"Ouchies",
	"Ow.",
	"As you wish.",
	"Down we go.",
	"What a drag.",
	"You have displeased :lizard:.",
	":rage:.",
	":drake-no:.",
	":rage4:.",
	"Tis a shame.",
	"Bugger.",
	"Crap.",
	"Uh oh.",
	"Second rate stuff.",
	"Vile.",
	"Feeble.",
	"Shoddy.",
	"Rough.",
	"Atrocious.",
	"Abominable.",
	"Sub-par.",
}
