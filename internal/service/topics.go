package service

// DefaultTopic labels questions seeded without a topic.
const DefaultTopic = "General"

var topicDisplayNames = map[string]string{
	"Algebra & Calculus":    "Algebra and Calculus",
	"Functions":             "Functions and Relations",
	"Geometry":              "Geometry",
	"Sets and Inequalities": "Sets, Logic and Inequalities",

	"Mechanics":      "Mechanics",
	"Thermodynamics": "Thermodynamics",
	"Optics":         "Optics and Waves",
	"Electricity":    "Electricity and Magnetism",

	"Organic Chemistry":    "Organic Chemistry",
	"Inorganic Chemistry":  "Inorganic Chemistry",
	"Physical Chemistry":   "Physical Chemistry",
	"Analytical Chemistry": "Analytical Chemistry",
}

// DisplayTopicName maps a stored topic label to its display form.
func DisplayTopicName(topic string) string {
	if name, ok := topicDisplayNames[topic]; ok {
		return name
	}
	return topic
}

const defaultRecommendation = "Continue practicing mock sets to identify specific weak points in this area."

var topicRecommendations = map[string]string{
	"Sets and Inequalities":    "Master definition, operations (union, intersection) and representation. Focus on quadratic and rational inequality solution methods.",
	"Functions":                "Review domain, range, monotonicity and parity. Deep dive into power, exponential and logarithmic transformations.",
	"Algebra & Calculus":       "Practice arithmetic and geometric sequence summations. Focus on the geometric meaning of derivatives and vector operations.",
	"Geometry":                 "Strengthen analytic geometry (conic sections) and solid geometry (coordinate systems and simple solid properties).",
	"Probability & Statistics": "Focus on classical probability models, data characteristics (mean and variance) and normal distribution concepts.",
}

// StaticRecommendation returns the built-in study advice for a topic.
func StaticRecommendation(topic string) string {
	if advice, ok := topicRecommendations[topic]; ok {
		return advice
	}
	return defaultRecommendation
}
