package nlquery

import "fmt"

const systemPrompt = "You are a helpful assistant that converts natural language queries into JSON filters. Always respond with valid JSON only."

const userPromptTemplate = `You are a natural language parser for athlete search queries. Convert the user's search query into JSON filters with these exact fields: sport, gender, nationality, division, location, and class_year.

Available sports: Football, Basketball, Soccer, Tennis, Swimming, Track and Field, Baseball, Volleyball, Golf, Lacrosse, Hockey, Rowing, Cross Country, Wrestling, Softball, Field Hockey, Water Polo, Rugby, Cricket, Other

Available divisions: D1, D2, D3, NAIA, JUCO

Available nationalities: Australian, New Zealand, Other

Available class years: 2024, 2025, 2026, 2027, 2028

Be precise and format the output as strict JSON only. If a field is not mentioned in the query, omit it from the JSON. Use null for empty values.

Example input: "Female golfers in D2 from Sydney"
Output: {"gender": "Female", "sport": "Golf", "division": "D2", "location": "Sydney"}

Example input: "Male D1 tennis players from Australia"
Output: {"gender": "Male", "sport": "Tennis", "division": "D1", "nationality": "Australian"}

Example input: "New Zealand swimmers graduating in 2026"
Output: {"sport": "Swimming", "nationality": "New Zealand", "class_year": "2026"}

User query: %q

Respond with JSON only:`

func userPrompt(query string) string {
	return fmt.Sprintf(userPromptTemplate, query)
}
