package cpp

import "text/template"

// runtimeTmpl is the stream and codec layer every generated header carries.
// Integers are copied as-is, so the host must be little-endian.
var runtimeTmpl = template.Must(template.New("runtime").Parse(`enum class IoError : std::uint8_t {
    UnexpectedEof,
    InvalidData,
};

struct Unit {};

template <typename T>
using Result = std::variant<T, IoError>;

#define {{.Try}}(expr)                                                \
    do {                                                              \
        auto res_ = (expr);                                           \
        if (auto *err_ = std::get_if<::{{.Namespace}}::IoError>(&res_)) { \
            return *err_;                                             \
        }                                                             \
    } while (0)

class Reader {
public:
    Reader(const std::uint8_t *data, std::size_t len) : data_(data), len_(len) {}

    Result<Unit> read(void *dst, std::size_t n) {
        if (len_ - pos_ < n) {
            return IoError::UnexpectedEof;
        }
        if (n > 0) {
            std::memcpy(dst, data_ + pos_, n);
        }
        pos_ += n;
        return Unit{};
    }

    Result<Unit> skip(std::size_t n) {
        if (len_ - pos_ < n) {
            return IoError::UnexpectedEof;
        }
        pos_ += n;
        return Unit{};
    }

    std::size_t position() const { return pos_; }

private:
    const std::uint8_t *data_;
    std::size_t len_;
    std::size_t pos_ = 0;
};

class Writer {
public:
    void write(const void *src, std::size_t n) {
        auto p = static_cast<const std::uint8_t *>(src);
        buf_.insert(buf_.end(), p, p + n);
    }

    void pad(std::size_t n) { buf_.insert(buf_.end(), n, 0); }

    std::size_t size() const { return buf_.size(); }
    const std::vector<std::uint8_t> &data() const { return buf_; }

private:
    std::vector<std::uint8_t> buf_;
};

template <typename T, typename = std::enable_if_t<std::is_arithmetic_v<T>>>
Result<Unit> decode(Reader &r, T &out);
inline Result<Unit> decode(Reader &r, char &out);
template <typename T, std::size_t N>
Result<Unit> decode(Reader &r, std::array<T, N> &out);
template <typename T>
Result<Unit> decode(Reader &r, std::vector<T> &out);
inline Result<Unit> decode(Reader &r, std::string &out);

template <typename T, typename = std::enable_if_t<std::is_arithmetic_v<T>>>
Result<Unit> encode(Writer &w, const T &v);
inline Result<Unit> encode(Writer &w, const char &v);
template <typename T, std::size_t N>
Result<Unit> encode(Writer &w, const std::array<T, N> &v);
template <typename T>
Result<Unit> encode(Writer &w, const std::vector<T> &v);
inline Result<Unit> encode(Writer &w, const std::string &v);

template <typename T, typename = std::enable_if_t<std::is_arithmetic_v<T>>>
std::size_t encoded_size(const T &v);
template <typename T, std::size_t N>
std::size_t encoded_size(const std::array<T, N> &v);
template <typename T>
std::size_t encoded_size(const std::vector<T> &v);
inline std::size_t encoded_size(const std::string &v);

template <typename T, typename>
Result<Unit> decode(Reader &r, T &out) {
    return r.read(&out, sizeof(T));
}

inline Result<Unit> decode(Reader &r, char &out) {
    {{.Try}}(r.read(&out, 1));
    if (static_cast<unsigned char>(out) > 0x7F) {
        return IoError::InvalidData;
    }
    return Unit{};
}

template <typename T, std::size_t N>
Result<Unit> decode(Reader &r, std::array<T, N> &out) {
    for (auto &item : out) {
        {{.Try}}(decode(r, item));
    }
    return Unit{};
}

template <typename T>
Result<Unit> decode(Reader &r, std::vector<T> &out) {
    std::uint16_t len = 0;
    {{.Try}}(decode(r, len));
    out.assign(len, T{});
    for (auto &item : out) {
        {{.Try}}(decode(r, item));
    }
    return Unit{};
}

inline Result<Unit> decode(Reader &r, std::string &out) {
    std::uint16_t len = 0;
    {{.Try}}(decode(r, len));
    out.assign(len, '\0');
    for (auto &c : out) {
        {{.Try}}(decode(r, c));
    }
    return Unit{};
}

template <typename T, typename>
Result<Unit> encode(Writer &w, const T &v) {
    w.write(&v, sizeof(T));
    return Unit{};
}

inline Result<Unit> encode(Writer &w, const char &v) {
    if (static_cast<unsigned char>(v) > 0x7F) {
        return IoError::InvalidData;
    }
    w.write(&v, 1);
    return Unit{};
}

template <typename T, std::size_t N>
Result<Unit> encode(Writer &w, const std::array<T, N> &v) {
    for (const auto &item : v) {
        {{.Try}}(encode(w, item));
    }
    return Unit{};
}

template <typename T>
Result<Unit> encode(Writer &w, const std::vector<T> &v) {
    if (v.size() > {{.MaxLen}}) {
        return IoError::InvalidData;
    }
    {{.Try}}(encode(w, static_cast<std::uint16_t>(v.size())));
    for (const auto &item : v) {
        {{.Try}}(encode(w, item));
    }
    return Unit{};
}

inline Result<Unit> encode(Writer &w, const std::string &v) {
    if (v.size() > {{.MaxLen}}) {
        return IoError::InvalidData;
    }
    {{.Try}}(encode(w, static_cast<std::uint16_t>(v.size())));
    for (const auto &c : v) {
        {{.Try}}(encode(w, c));
    }
    return Unit{};
}

template <typename T, typename>
std::size_t encoded_size(const T &) {
    return sizeof(T);
}

template <typename T, std::size_t N>
std::size_t encoded_size(const std::array<T, N> &v) {
    std::size_t n = 0;
    for (const auto &item : v) {
        n += encoded_size(item);
    }
    return n;
}

template <typename T>
std::size_t encoded_size(const std::vector<T> &v) {
    std::size_t n = {{.Header}};
    for (const auto &item : v) {
        n += encoded_size(item);
    }
    return n;
}

inline std::size_t encoded_size(const std::string &v) {
    return {{.Header}} + v.size();
}`))

type runtimeData struct {
	Namespace string
	Try       string
	MaxLen    int
	Header    int
}
