package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "statute articles",
			serviceName: "lawapi",
			objectType:  "articles",
			identifier:  "001706",
			expectedKey: "lawquiz:lawapi:articles:001706",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "lawapi",
			objectType:  "articles",
			identifier:  "001444",
			paramsKey:   []string{},
			expectedKey: "lawquiz:lawapi:articles:001444",
		},
		{
			name:        "store batches",
			serviceName: "store",
			objectType:  "batches",
			identifier:  "law_quizzes",
			expectedKey: "lawquiz:store:batches:law_quizzes",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "lawapi",
			objectType:  "articles",
			identifier:  "001692",
			paramsKey:   []string{"eflaw", "v2"},
			expectedKey: "lawquiz:lawapi:articles:001692:eflaw_v2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}
