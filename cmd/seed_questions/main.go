// Seeds the question pool with a starter set of general-knowledge questions,
// two per difficulty tier.
package main

import (
	"context"
	"log"
	"os"

	"milyoner_webapp/internal/domain"
	"milyoner_webapp/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

func q(text string, options [4]string, correct string, difficulty int, category string) domain.Question {
	return domain.Question{
		Text:          text,
		Options:       options[:],
		CorrectAnswer: correct,
		Difficulty:    difficulty,
		Category:      category,
	}
}

var seed = []domain.Question{
	q("What color is a ripe banana?", [4]string{"Yellow", "Blue", "Purple", "Black"}, "Yellow", 1, "general"),
	q("How many days are there in a week?", [4]string{"Five", "Six", "Seven", "Eight"}, "Seven", 1, "general"),

	q("Which animal is known as man's best friend?", [4]string{"Cat", "Dog", "Horse", "Parrot"}, "Dog", 2, "general"),
	q("What is the frozen form of water called?", [4]string{"Steam", "Ice", "Fog", "Dew"}, "Ice", 2, "science"),

	q("Which planet do we live on?", [4]string{"Mars", "Venus", "Earth", "Jupiter"}, "Earth", 3, "science"),
	q("How many sides does a triangle have?", [4]string{"Two", "Three", "Four", "Five"}, "Three", 3, "math"),

	q("What is the capital of France?", [4]string{"London", "Berlin", "Paris", "Madrid"}, "Paris", 4, "geography"),
	q("Which ocean is the largest?", [4]string{"Atlantic", "Indian", "Arctic", "Pacific"}, "Pacific", 4, "geography"),

	q("Who painted the Mona Lisa?", [4]string{"Van Gogh", "Picasso", "Leonardo da Vinci", "Michelangelo"}, "Leonardo da Vinci", 5, "art"),
	q("What gas do plants absorb from the atmosphere?", [4]string{"Oxygen", "Carbon dioxide", "Nitrogen", "Helium"}, "Carbon dioxide", 5, "science"),

	q("In which country are the pyramids of Giza located?", [4]string{"Mexico", "Egypt", "Peru", "Sudan"}, "Egypt", 6, "history"),
	q("How many strings does a standard guitar have?", [4]string{"Four", "Five", "Six", "Seven"}, "Six", 6, "music"),

	q("Which element has the chemical symbol 'O'?", [4]string{"Gold", "Osmium", "Oxygen", "Silver"}, "Oxygen", 7, "science"),
	q("Who wrote 'Romeo and Juliet'?", [4]string{"Charles Dickens", "William Shakespeare", "Jane Austen", "Mark Twain"}, "William Shakespeare", 7, "literature"),

	q("What is the longest river in the world?", [4]string{"Amazon", "Nile", "Yangtze", "Mississippi"}, "Nile", 8, "geography"),
	q("In which year did the Titanic sink?", [4]string{"1905", "1912", "1920", "1931"}, "1912", 8, "history"),

	q("What is the smallest prime number?", [4]string{"Zero", "One", "Two", "Three"}, "Two", 9, "math"),
	q("Which country hosted the first modern Olympic Games?", [4]string{"France", "Greece", "England", "Italy"}, "Greece", 9, "history"),

	q("What is the hardest natural substance on Earth?", [4]string{"Quartz", "Diamond", "Titanium", "Obsidian"}, "Diamond", 10, "science"),
	q("Who developed the theory of general relativity?", [4]string{"Isaac Newton", "Niels Bohr", "Albert Einstein", "Galileo Galilei"}, "Albert Einstein", 10, "science"),

	q("Which composer became deaf later in life yet kept composing?", [4]string{"Mozart", "Beethoven", "Bach", "Chopin"}, "Beethoven", 11, "music"),
	q("What is the capital of Australia?", [4]string{"Sydney", "Melbourne", "Canberra", "Perth"}, "Canberra", 11, "geography"),

	q("Which planet has the most moons?", [4]string{"Jupiter", "Saturn", "Uranus", "Neptune"}, "Saturn", 12, "science"),
	q("Who was the first woman to win a Nobel Prize?", [4]string{"Marie Curie", "Rosalind Franklin", "Dorothy Hodgkin", "Lise Meitner"}, "Marie Curie", 12, "history"),

	q("What is the only metal that is liquid at room temperature?", [4]string{"Gallium", "Mercury", "Cesium", "Sodium"}, "Mercury", 13, "science"),
	q("Which ancient wonder stood in the city of Ephesus?", [4]string{"Hanging Gardens", "Temple of Artemis", "Colossus of Rhodes", "Lighthouse of Alexandria"}, "Temple of Artemis", 13, "history"),

	q("What is the rarest naturally occurring blood type?", [4]string{"O negative", "B negative", "AB negative", "A negative"}, "AB negative", 14, "science"),
	q("Which mathematician proved Fermat's Last Theorem in 1994?", [4]string{"Andrew Wiles", "Grigori Perelman", "Terence Tao", "John Conway"}, "Andrew Wiles", 14, "math"),

	q("Which treaty ended the Thirty Years' War in 1648?", [4]string{"Treaty of Versailles", "Peace of Westphalia", "Treaty of Utrecht", "Congress of Vienna"}, "Peace of Westphalia", 15, "history"),
	q("What is the name of the closest known black hole to Earth?", [4]string{"Cygnus X-1", "Sagittarius A*", "Gaia BH1", "V404 Cygni"}, "Gaia BH1", 15, "science"),
}

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	repo := repository.NewQuestionRepository(db)
	for i := range seed {
		if err := repo.Create(context.Background(), &seed[i]); err != nil {
			log.Fatalf("seed question %d: %v", i, err)
		}
	}
	log.Printf("seeded %d questions", len(seed))
}
