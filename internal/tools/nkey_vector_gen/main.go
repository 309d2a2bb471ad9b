// Regenerates the user-1 conformance vector printed by an independent
// implementation of the token format. Output fields correspond to the
// files under testdata/conformance/nkeys/user-1/.
package main

import (
	"encoding/base64"
	"fmt"

	"xdao.co/nkeys/nkeys"
)

const vectorSeed = "SUANUMOF6TPEPPH2GERC5RVRQKJDPJVX5D3VZCJYP2DNOGAGYC7J3I5ITEVHAL46IGWPHMKLQAPB6CILWESKAJG4PGOVBYI4BYQJS76YSJZLQ"

func main() {
	key, err := nkeys.FromSeed(vectorSeed)
	if err != nil {
		panic(err)
	}

	canonicalSeed, err := key.Seed()
	if err != nil {
		panic(err)
	}
	publicKey, err := key.PublicKey()
	if err != nil {
		panic(err)
	}
	privateKey, err := key.PrivateKey()
	if err != nil {
		panic(err)
	}

	data := []byte("Hello World")
	sig, err := key.Sign(data)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Seed: %q\n", vectorSeed)
	fmt.Printf("CanonicalSeed: %q\n", canonicalSeed)
	fmt.Printf("Public: %q\n", publicKey)
	fmt.Printf("Private: %q\n", privateKey)
	fmt.Printf("Data: %q\n", data)
	fmt.Printf("Signature: %q\n", base64.StdEncoding.EncodeToString(sig))
}
