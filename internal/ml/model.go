package ml

import (
	"encoding/json"
	"fmt"
)

// Model pairs a fitted extractor with the classifier trained on its output.
type Model struct {
	Extractor  *Vectorizer
	Classifier *RandomForest
}

func (m *Model) Ready() bool {
	return m != nil && m.Extractor.Fitted() && m.Classifier.Fitted()
}

// Labels is the closed set of categories the model can emit.
func (m *Model) Labels() []string {
	if !m.Ready() {
		return nil
	}
	return append([]string(nil), m.Classifier.Classes...)
}

// Predict transforms all descriptions in one batch and returns one label
// per description, in input order.
func (m *Model) Predict(descriptions []string) ([]string, error) {
	if !m.Ready() {
		return nil, ErrNotFitted
	}
	return m.Classifier.PredictBatch(m.Extractor.Transform(descriptions))
}

// Train fits a fresh extractor and classifier on the labeled descriptions.
func Train(descriptions, labels []string, cfg ForestConfig) (*Model, error) {
	extractor := NewVectorizer()
	if err := extractor.Fit(descriptions); err != nil {
		return nil, fmt.Errorf("fit extractor: %w", err)
	}
	classifier := NewRandomForest(cfg)
	if err := classifier.Fit(extractor.Transform(descriptions), labels); err != nil {
		return nil, fmt.Errorf("fit classifier: %w", err)
	}
	return &Model{Extractor: extractor, Classifier: classifier}, nil
}

// Encode serializes both halves of the model as separate artifacts.
func (m *Model) Encode() (extractor, classifier []byte, err error) {
	if extractor, err = json.Marshal(m.Extractor); err != nil {
		return nil, nil, fmt.Errorf("encode extractor: %w", err)
	}
	if classifier, err = json.Marshal(m.Classifier); err != nil {
		return nil, nil, fmt.Errorf("encode classifier: %w", err)
	}
	return extractor, classifier, nil
}

// Decode rebuilds a model from its two artifacts and rejects anything that
// is not a complete, consistent pair.
func Decode(extractor, classifier []byte) (*Model, error) {
	var v Vectorizer
	if err := json.Unmarshal(extractor, &v); err != nil {
		return nil, fmt.Errorf("decode extractor: %w", err)
	}
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("extractor: %w", err)
	}

	var f RandomForest
	if err := json.Unmarshal(classifier, &f); err != nil {
		return nil, fmt.Errorf("decode classifier: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}

	if v.NumFeatures() != f.NumFeatures {
		return nil, fmt.Errorf("extractor has %d features but classifier expects %d", v.NumFeatures(), f.NumFeatures)
	}
	return &Model{Extractor: &v, Classifier: &f}, nil
}
