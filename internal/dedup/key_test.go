package dedup

import "testing"

func TestKey(t *testing.T) {
	key1 := Key("Georgian Silver Sale", "https://auctions.example/lots/101")
	key2 := Key("Georgian Silver Sale", "https://auctions.example/lots/101")

	if key1 != key2 {
		t.Errorf("Key not deterministic: %s != %s", key1, key2)
	}

	if key1 != "Georgian Silver Sale|https://auctions.example/lots/101" {
		t.Errorf("Unexpected key format: %s", key1)
	}

	key3 := Key("Other Sale", "https://auctions.example/lots/101")
	if key1 == key3 {
		t.Errorf("Key should change when title changes")
	}

	key4 := Key("Georgian Silver Sale", "https://auctions.example/lots/102")
	if key1 == key4 {
		t.Errorf("Key should change when link changes")
	}
}
