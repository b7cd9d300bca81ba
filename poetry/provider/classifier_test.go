package provider

import "testing"

func TestDecodeLooseJSON(t *testing.T) {
	t.Parallel()

	var direct emotionScores
	if err := decodeLooseJSON(`{"joy": 0.7}`, &direct); err != nil || direct.Joy != 0.7 {
		t.Fatalf("direct decode: %+v err=%v", direct, err)
	}

	var wrapped emotionScores
	if err := decodeLooseJSON("Вот оценки:\n{\"joy\": 0.4}\nГотово.", &wrapped); err != nil || wrapped.Joy != 0.4 {
		t.Fatalf("wrapped decode: %+v err=%v", wrapped, err)
	}

	var empty emotionScores
	if err := decodeLooseJSON("   ", &empty); err == nil {
		t.Fatal("empty input: want error")
	}
	if err := decodeLooseJSON("никакого json тут нет", &empty); err == nil {
		t.Fatal("no object: want error")
	}
	if err := decodeLooseJSON("хвост } без открытия", &empty); err == nil {
		t.Fatal("closing brace before opening: want error")
	}
}
