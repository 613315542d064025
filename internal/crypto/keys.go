package crypto

import "contactpsi/internal/domain"

// GenerateIdentity returns a party identity with fresh X25519 and Ed25519
// key pairs.
func GenerateIdentity() (domain.Identity, error) {
	xpriv, xpub, err := GenerateX25519()
	if err != nil {
		return domain.Identity{}, err
	}
	edpriv, edpub, err := GenerateEd25519()
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{XPub: xpub, XPriv: xpriv, EdPub: edpub, EdPriv: edpriv}, nil
}

// GenerateClusterKeys returns fresh key material for a computation cluster.
func GenerateClusterKeys() (domain.ClusterKeys, error) {
	bpriv, bpub, err := GenerateX25519()
	if err != nil {
		return domain.ClusterKeys{}, err
	}
	spriv, spub, err := GenerateEd25519()
	if err != nil {
		return domain.ClusterKeys{}, err
	}
	return domain.ClusterKeys{BoxPriv: bpriv, BoxPub: bpub, SignPriv: spriv, SignPub: spub}, nil
}
