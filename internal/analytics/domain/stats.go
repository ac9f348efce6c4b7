package domain

// Uncategorized libellé du groupe des produits sans catégorie
const Uncategorized = "Uncategorized"

// CommentSeparator séparateur des commentaires concaténés d'un produit
const CommentSeparator = " || "
