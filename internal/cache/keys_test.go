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
			name:        "without paramsKey",
			serviceName: "stats",
			objectType:  "user",
			identifier:  "01H0000000000000000000USER",
			paramsKey:   nil,
			expectedKey: "quizverse:stats:user:01H0000000000000000000USER",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "stats",
			objectType:  "user",
			identifier:  "123",
			paramsKey:   []string{},
			expectedKey: "quizverse:stats:user:123",
		},
		{
			name:        "with one paramsKey",
			serviceName: "quiz",
			objectType:  "results",
			identifier:  "abc",
			paramsKey:   []string{"latest"},
			expectedKey: "quizverse:quiz:results:abc:latest",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "quiz",
			objectType:  "history",
			identifier:  "xyz",
			paramsKey:   []string{"page1", "size20"},
			expectedKey: "quizverse:quiz:history:xyz:page1_size20",
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
