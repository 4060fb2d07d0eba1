package testing

// ArticleText has 51 words in 4 sentences, enough to pass the article check.
const ArticleText = "The city council approved a new budget for public transport on Monday evening. " +
	"Officials said the plan would add twenty electric buses to the fleet by spring. " +
	"Critics argued that the money should fund road repairs across older districts. " +
	"Residents can comment on the proposal at a public hearing next week."
