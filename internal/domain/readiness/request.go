package readiness

import "github.com/bryanwahyu/esg-responder/internal/domain/esg"

// DataPoint is one item a questionnaire topic asks for.
type DataPoint struct {
	Key      string `json:"key" yaml:"key"`
	Label    string `json:"label" yaml:"label"`
	Category string `json:"category" yaml:"category"`
	Required bool   `json:"required" yaml:"required"`
}

// Topic groups the data points a questionnaire section needs.
type Topic struct {
	Code       string      `json:"code" yaml:"code"`
	Name       string      `json:"name" yaml:"name"`
	DataPoints []DataPoint `json:"data_points" yaml:"data_points"`
}

// TopicMapping is a read-only topic -> data point table.
type TopicMapping struct {
	topics []Topic
	byCode map[string]int
}

func NewTopicMapping(topics []Topic) TopicMapping {
	m := TopicMapping{topics: topics, byCode: make(map[string]int, len(topics))}
	for i, t := range topics {
		if _, dup := m.byCode[t.Code]; !dup {
			m.byCode[t.Code] = i
		}
	}
	return m
}

// Topics returns the topics in catalog order.
func (m TopicMapping) Topics() []Topic { return m.topics }

// Lookup finds a topic by code.
func (m TopicMapping) Lookup(code string) (Topic, bool) {
	i, ok := m.byCode[code]
	if !ok {
		return Topic{}, false
	}
	return m.topics[i], true
}

// DataPointState pairs a required data point with whatever is tracked for it.
type DataPointState struct {
	DataPoint
	Status     esg.Status     `json:"status"`
	Confidence esg.Confidence `json:"confidence"`
	RecordID   string         `json:"record_id,omitempty"`
}

// RequestReadiness partitions the data points of a questionnaire request.
// Ready, NeedsAttention and NotTracked are disjoint and together cover every
// data point of the selected topics.
type RequestReadiness struct {
	Topics         []string         `json:"topics"`
	UnknownTopics  []string         `json:"unknown_topics,omitempty"`
	Ready          []DataPointState `json:"ready"`
	NeedsAttention []DataPointState `json:"needs_attention"`
	NotTracked     []DataPointState `json:"not_tracked"`
	Total          int              `json:"total"`
	PercentReady   int              `json:"percent_ready"`
}

// ForRequest computes readiness for the selected topics. Data points shared
// by several topics are counted once, in first-seen order. When several
// records track the same data point the first one wins.
func ForRequest(selected []string, mapping TopicMapping, records []esg.ConfidenceRecord) RequestReadiness {
	tracked := make(map[string]esg.ConfidenceRecord, len(records))
	for _, r := range records {
		if r.DataPoint == "" {
			continue
		}
		if _, seen := tracked[r.DataPoint]; !seen {
			tracked[r.DataPoint] = r
		}
	}

	out := RequestReadiness{
		Topics:         []string{},
		Ready:          []DataPointState{},
		NeedsAttention: []DataPointState{},
		NotTracked:     []DataPointState{},
	}
	seenTopic := map[string]bool{}
	seenPoint := map[string]bool{}
	for _, code := range selected {
		if seenTopic[code] {
			continue
		}
		seenTopic[code] = true
		topic, ok := mapping.Lookup(code)
		if !ok {
			out.UnknownTopics = append(out.UnknownTopics, code)
			continue
		}
		out.Topics = append(out.Topics, code)
		for _, dp := range topic.DataPoints {
			if seenPoint[dp.Key] {
				continue
			}
			seenPoint[dp.Key] = true

			state := DataPointState{DataPoint: dp, Status: esg.StatusNotStarted, Confidence: esg.ConfidenceNone}
			r, ok := tracked[dp.Key]
			if ok {
				state.Status = NormalizeStatus(r.Status)
				state.Confidence = NormalizeConfidence(r.Confidence)
				state.RecordID = r.ID
			}
			switch {
			case !ok || state.Status == esg.StatusNotStarted:
				out.NotTracked = append(out.NotTracked, state)
			case Classify(state.Status, state.Confidence):
				out.Ready = append(out.Ready, state)
			default:
				out.NeedsAttention = append(out.NeedsAttention, state)
			}
		}
	}
	out.Total = len(out.Ready) + len(out.NeedsAttention) + len(out.NotTracked)
	out.PercentReady = percent(len(out.Ready), out.Total)
	return out
}
