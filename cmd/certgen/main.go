package main

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"math/big"
	"net"
	"os"
	"time"
)

// certgen writes a self-signed cert.pem/key.pem pair for serving the API
// over TLS in development.
func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	if !isCertMissing() {
		return errors.New("cert exists")
	}

	var ipFlag string
	flag.StringVar(&ipFlag, "ip", "", "server ip to include in the certificate")
	flag.Parse()

	ca := &x509.Certificate{
		SerialNumber: randomInt(),
		Subject: pkix.Name{
			Organization: []string{"financeserver"},
		},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().AddDate(10, 0, 0),
		IsCA:                  true,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}

	caPrivKey, err := rsa.GenerateKey(rand.Reader, 4096)
	if err != nil {
		return err
	}

	if _, err := x509.CreateCertificate(rand.Reader, ca, ca, &caPrivKey.PublicKey, caPrivKey); err != nil {
		return err
	}

	ips := []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback}
	if ipFlag != "" {
		ips = []net.IP{net.ParseIP(ipFlag)}
	}

	cert := &x509.Certificate{
		SerialNumber: randomInt(),
		Subject: pkix.Name{
			Organization: []string{"financeserver"},
		},
		IPAddresses:  ips,
		NotBefore:    time.Now(),
		NotAfter:     time.Now().AddDate(10, 0, 0),
		SubjectKeyId: []byte{1, 2, 3, 4, 6},
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}

	certPrivKey, err := rsa.GenerateKey(rand.Reader, 4096)
	if err != nil {
		return err
	}

	certBytes, err := x509.CreateCertificate(rand.Reader, cert, ca, &certPrivKey.PublicKey, caPrivKey)
	if err != nil {
		return err
	}

	certPEM := new(bytes.Buffer)
	err = pem.Encode(certPEM, &pem.Block{
		Type:  "CERTIFICATE",
		Bytes: certBytes,
	})
	if err != nil {
		return err
	}

	certPrivKeyPEM := new(bytes.Buffer)
	err = pem.Encode(certPrivKeyPEM, &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(certPrivKey),
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile("cert.pem", certPEM.Bytes(), 0o600); err != nil {
		return err
	}
	if err := os.WriteFile("key.pem", certPrivKeyPEM.Bytes(), 0o600); err != nil {
		return err
	}
	return nil
}

func isCertMissing() bool {
	_, err := os.Stat("cert.pem")
	if errors.Is(err, os.ErrNotExist) {
		return true
	}
	_, err = os.Stat("key.pem")
	if errors.Is(err, os.ErrNotExist) {
		return true
	}
	return false
}

func randomInt() *big.Int {
	i, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		panic(err)
	}
	return i
}
