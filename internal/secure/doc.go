// Package secure keeps the Vault token out of plain process memory.
//
// The token is sealed in a memguard enclave (XSalsa20Poly1305 encrypted,
// mlocked where the platform allows it) as soon as it is read from the step
// inputs, and only decrypted at the point of use (masking, exporting,
// building a request header):
//
//	tok, err := secure.NewToken(raw)
//	if err != nil {
//	    return err
//	}
//	defer tok.Destroy()
//
//	value, err := tok.Reveal()
//
// Call memguard.Purge at process exit to wipe every enclave key.
//
// This does NOT protect against attackers with root access to the running
// process, and values handed to the pipeline host are outside its reach.
package secure
