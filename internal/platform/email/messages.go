package email

import "fmt"

type message struct {
	subject string
	text    string
}

func welcomeMessage(name string) message {
	return message{
		subject: "Thanks for joining in!",
		text:    fmt.Sprintf("Welcome to the app, %s. Let me know how you get along with the app.", name),
	}
}

func cancellationMessage(name string) message {
	return message{
		subject: "Sorry to see you go!",
		text:    fmt.Sprintf("Goodbye, %s. I hope to see you back sometime soon.", name),
	}
}
