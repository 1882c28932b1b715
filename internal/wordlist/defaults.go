package wordlist

import "codeberg.org/snonux/worttrainer/internal/trainer"

// DefaultItems returns the built-in word list.
func DefaultItems() []trainer.Item {
	return []trainer.Item{
		{Text: "Apple", URL: "https://upload.wikimedia.org/wikipedia/commons/1/15/Red_Apple.jpg", Attribution: "Abhijit Tembhekar, CC BY 2.0"},
		{Text: "Raspberry", URL: "https://upload.wikimedia.org/wikipedia/commons/e/e0/Raspberries05.jpg", Attribution: "Fir0002, GFDL 1.2"},
		{Text: "Banana", URL: "https://upload.wikimedia.org/wikipedia/commons/8/8a/Banana-Single.jpg", Attribution: "Evan-Amos, public domain"},
		{Text: "Cat", URL: "https://upload.wikimedia.org/wikipedia/commons/3/3a/Cat03.jpg", Attribution: "Alvesgaspar, CC BY-SA 3.0"},
		{Text: "Dog", URL: "https://upload.wikimedia.org/wikipedia/commons/d/d9/Collage_of_Nine_Dogs.jpg", Attribution: "Wikimedia Commons, CC BY-SA 3.0"},
		{Text: "House", URL: "https://upload.wikimedia.org/wikipedia/commons/1/1b/Single-family_home.jpg", Attribution: "Wikimedia Commons, CC BY-SA 3.0"},
	}
}
