package bank

// Default returns the built-in bank used when no remote source is
// configured. Entries mirror the question set the target quiz ships with.
func Default() Bank {
	return New(
		MustEntry("Which country won the FIFA World Cup in 2022?", "Argentina"),
		MustEntry("What is the capital of Australia?", "Canberra"),
		MustEntry("Which planet is known as the Red Planet?", "Mars"),
		MustEntry("Who painted the Mona Lisa?", "Leonardo da Vinci"),
		MustEntry("What is the largest ocean on Earth?", "Pacific Ocean"),
		MustEntry("In which year did World War II end?", "1945"),
		MustEntry("What is the chemical symbol for gold?", "Au"),
		MustEntry("Which language has the most native speakers?", "Mandarin Chinese"),
	)
}
