package llm

// SuggestPropertiesPrompt asks the model which predecessor properties carry
// across their connecting relationships onto the current node. The single %s
// slot receives the JSON-encoded vertex context (predecessors, edges, current
// node).
const SuggestPropertiesPrompt = `
# Task Context
You are a causal reasoning assistant for a semantic knowledge graph. Nodes are
entities, directed edges are relationships, and properties describe conditions
that can propagate along relationships (a pump that overpressurizes can push
overpressure into the valve it feeds).

# Background Data
%s

The data lists each predecessor entity with the properties it currently
carries (each with a confidence between 0 and 1), the relationships connecting
those predecessors to the current entity, and the current entity with the
properties it already has.

# Detailed Task Description & Rules
- For every predecessor property, judge whether the connecting relationship
  transmits it to the current entity, and with what confidence.
- Confidence must be a number between 0 and 1. It reflects only the strength
  of this single causal step; upstream confidence is combined separately.
- When a suggestion continues an existing property, echo that property's "id"
  exactly as given. Leave "id" empty only for a genuinely new property that
  emerges at the current entity.
- Adapt "name" and "description" to the current entity where the effect
  changes character (overpressure in a pipe may become flooding in a tank).
- Do not suggest properties with no causal grounding in the predecessors.
- Do not restate the current entity's existing properties unless a
  predecessor reinforces them.

# Examples
A predecessor "pump-7" carrying {"id": "property_abc", "name": "overpressure",
"confidence": 0.9} connected by the relationship "feeds" to the current entity
"relief-valve" would yield:
{
  "suggestions": [
    {
      "id": "property_abc",
      "name": "overpressure",
      "description": "Pressure above rated limits arriving from pump-7",
      "confidence": 0.8
    }
  ]
}

# Output Formatting
Return a JSON object with this structure and nothing else:
{
  "suggestions": [
    {
      "id": "<echoed property id, or empty for a new property>",
      "name": "<property name>",
      "description": "<one-sentence description>",
      "confidence": <number between 0 and 1>
    }
  ]
}
An empty "suggestions" array is a valid answer when nothing propagates.
`
