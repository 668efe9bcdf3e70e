// 指示: miu200521358
package messages

import "testing"

func TestCliMessageKeysAreDefined(t *testing.T) {
	keys := []string{
		UsageBonePath,
		UsageRigidPath,
		UsageJointPath,
		UsageSkeletonPath,
		UsageOutPath,
		UsageScale,
		UsageLayer,
		UsageVerbose,
		MessageBoneRequired,
		MessageRigidRequired,
		MessageJointRequired,
		MessageSkeletonRequired,
		MessageDescriptorReadFailed,
		MessageSkeletonLoadFailed,
		MessageSynthesisFailed,
		LogParseSuccess,
		LogSynthesisSuccess,
		LogSceneSaved,
		LogRigidBodySkipped,
		LogJointSkipped,
		LogImportProgress,
	}

	seen := map[string]struct{}{}
	for _, key := range keys {
		if key == "" {
			t.Fatalf("key should not be empty")
		}
		if _, exists := seen[key]; exists {
			t.Fatalf("key should be unique: %s", key)
		}
		seen[key] = struct{}{}
	}
}
