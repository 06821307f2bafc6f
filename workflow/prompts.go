package workflow

import "strings"

// GeneralResponse is the fixed output of the general branch.
const GeneralResponse = "This is a general response."

const classifyTemplate = `You are a helpful AI assistant that helps to decide what action based on the user input.
Your task is to decide what action to take based on the user input.
The user input is: {user_input}
Your decision should be one of the following: summarize, general`

const fetchContentTemplate = `You are a helpful AI assistant that helps in fetching the email content.
Your task is to fetch the email content based on the user input.
The user input is: {user_input}
Your response should be the email content.`

const summarizeTemplate = `You are a helpful AI assistant that helps in summarizing the email content.
Your task is to summarize the email content.
The email content is: {email_content}
Your response should be a summary of the email content.`

// ClassifyPrompt builds the classification prompt.
func ClassifyPrompt(userInput string) string {
	return strings.Replace(classifyTemplate, "{user_input}", userInput, 1)
}

// FetchContentPrompt builds the content-fetch prompt.
func FetchContentPrompt(userInput string) string {
	return strings.Replace(fetchContentTemplate, "{user_input}", userInput, 1)
}

// SummarizePrompt builds the summarization prompt.
func SummarizePrompt(emailContent string) string {
	return strings.Replace(summarizeTemplate, "{email_content}", emailContent, 1)
}
